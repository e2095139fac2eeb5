package testutil

import (
	"os"
	"os/exec"
	"testing"
)

var chromeCandidates = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"headless-shell",
}

// BrowserTestConfigured reports whether the browser integration tests are
// enabled with TEST_BROWSER=1 and a chrome executable can be found.
// CHROME_PATH takes precedence over the PATH lookup.
func BrowserTestConfigured(t *testing.T) (chromePath string, ok bool) {
	if os.Getenv("TEST_BROWSER") != "1" {
		return "", false
	}

	if p, found := os.LookupEnv("CHROME_PATH"); found {
		if _, err := os.Stat(p); err == nil {
			t.Logf("browser integration test enabled, chrome = %s", p)
			return p, true
		}
	}

	for _, name := range chromeCandidates {
		if p, err := exec.LookPath(name); err == nil {
			t.Logf("browser integration test enabled, chrome = %s", p)
			return p, true
		}
	}

	return "", false
}
