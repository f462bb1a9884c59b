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

package types

// Config represents the harness configuration file
type Config struct {
	DNFCommand        string   `json:"dnfCommand" koanf:"dnfCommand"`
	RPMCommand        string   `json:"rpmCommand" koanf:"rpmCommand"`
	CreaterepoCommand string   `json:"createrepoCommand" koanf:"createrepoCommand"`
	DNFArgs           string   `json:"dnfArgs" koanf:"dnfArgs"`
	DumpConfigArgs    []string `json:"dumpConfigArgs" koanf:"dumpConfigArgs"`
	ResourcesDir      string   `json:"resourcesDir" koanf:"resourcesDir"`
	StateDir          string   `json:"stateDir" koanf:"stateDir"`
	GuestReleasever   string   `json:"guestReleasever" koanf:"guestReleasever"`
	BasePackages      []string `json:"basePackages" koanf:"basePackages"`
	MetadataExpire    int      `json:"metadataExpire" koanf:"metadataExpire"`
	LogLevel          string   `json:"logLevel" koanf:"logLevel"`
}
