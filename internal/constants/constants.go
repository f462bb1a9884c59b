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

package constants

const (
	SystemConfigPath = "/etc/dnf-extra-tests/config.toml"
	UserConfigDir    = "dnf-extra-tests"
	UserConfigName   = "config.toml"
	EnvPrefix        = "DNF_EXTRA_TESTS_"
	LedgerName       = "ledger.msgpack"
)

// Repository identifiers. The suite repository lives in the main
// configuration for the whole run, the scratch one is created by steps.
const (
	RepoID      = "dnf-extra-tests"
	SuiteRepoID = "dnf-extra-tests-suite"
)

// GuestReleasever is the release version of every guest install root
// unless the harness configuration says otherwise.
const GuestReleasever = "19"

// Names inside the resource store.
const (
	RepositoryDir     = "repository"
	GPGKeyName        = "TEST-GPG-KEY"
	GPGPrivateKeyName = "TEST-GPG-KEY.private"
	MetalinkName      = "metalink.xml"
	MirrorlistName    = "mirrorlist.txt"
	PluginName        = "dnf-extra-tests.py"
	PluginConfName    = "dnf-extra-tests.conf"
)

const (
	TestPackage       = "foo"
	TestPackageFile   = "foo-1-1.noarch.rpm"
	SignedPackage     = "signed-foo"
	SignedPackageFile = "signed-foo-1-1.noarch.rpm"
	TrackingGroup     = "Books and Guides"
)

const (
	PluginOutput     = "An output of the dnf-extra-tests plugin: This is unique."
	PluginConfOutput = "dnf-extra-tests plugin's option is configured."
)

const ReleaseverProvide = "system-release(releasever)"

var Version = "v0.0.0"
