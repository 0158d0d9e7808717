package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestParseJson_OverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `{
		"endpoint_addr_http": ":8088",
		"database_dsn": "postgres://u:p@localhost:5432/idx",
		"secret_key": "json-secret",
		"token_validity_duration": "30m",
		"s3_bucket": "idx-bucket"
	}`)

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"test", "-c", path}

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	require.Equal(t, ":8088", c.EndpointAddrHTTP)
	require.Equal(t, "postgres://u:p@localhost:5432/idx", c.DatabaseDSN)
	require.Equal(t, "json-secret", c.SecretKey)
	require.Equal(t, 30*time.Minute, c.TokenValidityDuration)
	require.Equal(t, "idx-bucket", c.S3Bucket)
}

func TestParseJson_NoFlagIsNoop(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"test"}

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	require.Equal(t, ":9200", c.EndpointAddrHTTP)
}

func TestParseJson_InvalidFilePanics(t *testing.T) {
	path := writeConfigFile(t, `{not json`)

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"test", "-c", path}

	var c Config
	c.LoadDefaults()
	require.Panics(t, func() { parseJson(&c) })
}
