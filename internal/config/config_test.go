package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"careerctl"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func TestLoadConfig_Defaults(t *testing.T) {
	withArgs(t)

	cfg := LoadConfig()

	assert.Equal(t, "http://localhost:8000", cfg.ServerEndpointURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "careerrise.db", cfg.DatabasePath)
}

func TestLoadConfig_Flags(t *testing.T) {
	withArgs(t, "-a", "http://api.example.org", "-t", "30", "-d", "/tmp/creds.db")

	cfg := LoadConfig()

	assert.Equal(t, "http://api.example.org", cfg.ServerEndpointURL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "/tmp/creds.db", cfg.DatabasePath)
}

func TestLoadConfig_Env(t *testing.T) {
	withArgs(t)
	t.Setenv("CAREERCTL_SERVER_URL", "http://env.example.org")
	t.Setenv("CAREERCTL_REQUEST_TIMEOUT", "7s")

	cfg := LoadConfig()

	assert.Equal(t, "http://env.example.org", cfg.ServerEndpointURL)
	assert.Equal(t, 7*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "careerrise.db", cfg.DatabasePath, "untouched values keep defaults")
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	withArgs(t, "-a", "http://flag.example.org")
	t.Setenv("CAREERCTL_SERVER_URL", "http://env.example.org")

	cfg := LoadConfig()

	assert.Equal(t, "http://flag.example.org", cfg.ServerEndpointURL)
}
