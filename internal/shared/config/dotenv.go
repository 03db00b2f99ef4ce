package config

import (
	"os"
	"strings"
)

// loadEnvFiles reads KEY=VALUE lines from the given files into the process
// environment. Missing files and malformed lines are skipped; this exists
// only for local development convenience.
func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			key, value, ok := strings.Cut(line, "=")
			if !ok {
				continue
			}
			key = strings.TrimSpace(key)
			if key == "" {
				continue
			}
			os.Setenv(key, strings.Trim(strings.TrimSpace(value), `"`))
		}
	}
}
