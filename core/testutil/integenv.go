// Package testutil provides shared helpers for integration tests.
package testutil

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// IntegEnvFile is the fallback file for integration test settings, relative to the home directory.
const IntegEnvFile = "~/.config/release-notes/.env.integ-test"

var (
	integEnvOnce sync.Once
	integEnvVars map[string]string
)

func loadIntegEnvFile() map[string]string {
	integEnvOnce.Do(func() {
		integEnvVars = map[string]string{}
		home, err := os.UserHomeDir()
		if err != nil {
			return
		}
		f, err := os.Open(filepath.Join(home, strings.TrimPrefix(IntegEnvFile, "~/")))
		if err != nil {
			return
		}
		defer func() { _ = f.Close() }()
		integEnvVars = parseEnvLines(bufio.NewScanner(f))
	})
	return integEnvVars
}

func parseEnvLines(scanner *bufio.Scanner) map[string]string {
	vars := map[string]string{}
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if k, v, ok := strings.Cut(line, "="); ok {
			vars[strings.TrimSpace(k)] = strings.Trim(strings.TrimSpace(v), `"'`)
		}
	}
	return vars
}

// IntegEnv returns the value of key from the environment, falling back to
// IntegEnvFile if the env var is not set.
func IntegEnv(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return loadIntegEnvFile()[key]
}
