// dnf-extra-tests - acceptance tests for the DNF package manager
// Copyright (C) 2025 The dnf-extra-tests Authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package tempstate

import (
	"context"
	"log/slog"

	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/fsutils"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/manager"
)

// Installer installs packages with DNF.
type Installer interface {
	Install(ctx context.Context, opts *manager.Opts, specs ...string) ([]byte, error)
}

// PrepareInstallRoot installs the base packages for releasever into a
// fresh root using the repositories of the host.
func PrepareInstallRoot(ctx context.Context, dnf Installer, root, releasever string, packages []string) error {
	if err := fsutils.EnsureDir(root); err != nil {
		return &DownloadOrTransactionError{Root: root, Err: err}
	}

	slog.Debug("preparing install root", "root", root, "releasever", releasever, "packages", packages)
	_, err := dnf.Install(ctx, &manager.Opts{
		Installroot: root,
		Releasever:  releasever,
		Quiet:       true,
		AssumeYes:   true,
	}, packages...)
	if err != nil {
		return &DownloadOrTransactionError{Root: root, Err: err}
	}
	return nil
}
