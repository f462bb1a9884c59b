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

	"github.com/hashicorp/go-multierror"
)

// WithResourceCopies creates every copy, runs fn and removes the copies
// that were created, whatever fn returned.
func WithResourceCopies(copies []*ResourceCopy, fn func() error) (err error) {
	var created []*ResourceCopy
	defer func() {
		var merr *multierror.Error
		if err != nil {
			merr = multierror.Append(merr, err)
		}
		for i := len(created) - 1; i >= 0; i-- {
			if rerr := created[i].Remove(); rerr != nil {
				merr = multierror.Append(merr, rerr)
			}
		}
		err = merr.ErrorOrNil()
	}()

	for _, c := range copies {
		if err := c.Create(); err != nil {
			return err
		}
		created = append(created, c)
	}
	return fn()
}

// WithRepoConfig adds repo, runs fn and removes repo, whatever fn
// returned.
func WithRepoConfig(ctx context.Context, repo *RepoConfig, fn func() error) (err error) {
	if err := repo.Add(); err != nil {
		return err
	}
	defer func() {
		if rerr := repo.Remove(ctx); rerr != nil {
			err = multierror.Append(err, rerr).ErrorOrNil()
		}
	}()
	return fn()
}
