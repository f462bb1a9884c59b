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

//go:build e2e

package e2etests_test

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/caarlos0/env"
	"github.com/efficientgo/e2e"
)

type e2eEnv struct {
	Binary   string   `env:"DNF_EXTRA_TESTS_BINARY" envDefault:"../dnf-extra-tests"`
	Features string   `env:"DNF_EXTRA_TESTS_FEATURES" envDefault:"../features"`
	Images   []string `env:"DNF_EXTRA_TESTS_IMAGES" envSeparator:"," envDefault:"fedora:41"`
}

func loadEnv(t *testing.T) e2eEnv {
	t.Helper()
	var cfg e2eEnv
	assert.NoError(t, env.Parse(&cfg))
	return cfg
}

func absPath(t *testing.T, path string) string {
	t.Helper()
	abs, err := filepath.Abs(path)
	assert.NoError(t, err)
	_, err = os.Stat(abs)
	assert.NoError(t, err, "%s is missing, build it first", abs)
	return abs
}

func execShouldNoError(t *testing.T, r e2e.Runnable, cmd string, args ...string) {
	t.Helper()
	assert.NoError(t, r.Exec(e2e.NewCommand(cmd, args...)))
}

func execShouldError(t *testing.T, r e2e.Runnable, cmd string, args ...string) {
	t.Helper()
	assert.Error(t, r.Exec(e2e.NewCommand(cmd, args...)))
}

// prepareImage installs what the fixture generator and the scenarios
// need on top of the base image.
func prepareImage(t *testing.T, r e2e.Runnable) {
	t.Helper()
	execShouldNoError(t, r, "dnf", "-y", "install", "createrepo_c", "python3-dnf", "dnf-plugins-core")
}

func dockerMultipleRun(t *testing.T, name string, f func(t *testing.T, r e2e.Runnable)) {
	cfg := loadEnv(t)
	binary := absPath(t, cfg.Binary)
	features := absPath(t, cfg.Features)

	t.Run(name, func(t *testing.T) {
		for _, image := range cfg.Images {
			image := image
			t.Run(image, func(t *testing.T) {
				t.Parallel()
				dockerName := fmt.Sprintf("dnf-extra-tests-%s-%s", name, image)
				hash := sha256.Sum256([]byte(dockerName))
				hashSum := hex.EncodeToString(hash[:])

				e, err := e2e.New(e2e.WithName(hashSum[:8]))
				assert.NoError(t, err)
				t.Cleanup(e.Close)

				r := e.Runnable(hashSum[:12]).Init(e2e.StartOptions{
					Image:   image,
					Command: e2e.NewCommandWithoutEntrypoint("tail", "-f", "/dev/null"),
					Volumes: []string{
						binary + ":/usr/bin/dnf-extra-tests",
						features + ":/srv/dnf-extra-tests/features",
					},
					Privileged: true,
				})
				assert.NoError(t, e2e.StartAndWaitReady(r))

				prepareImage(t, r)
				f(t, r)
			})
		}
	})
}
