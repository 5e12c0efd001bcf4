package config

import (
	"flag"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// TestNetAddress_String tests the String method of NetAddress
func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{name: "empty address", addr: NetAddress{}, expected: ""},
		{name: "localhost with port", addr: NetAddress{Host: "localhost", Port: 8080}, expected: "localhost:8080"},
		{name: "IP address with port", addr: NetAddress{Host: "127.0.0.1", Port: 9090}, expected: "127.0.0.1:9090"},
		{name: "only port no host", addr: NetAddress{Port: 8080}, expected: ":8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.addr.String())
		})
	}
}

// TestNetAddress_Set tests the Set method of NetAddress
func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		expectError  bool
		expectedAddr NetAddress
	}{
		{name: "valid localhost", input: "localhost:8080", expectedAddr: NetAddress{Host: "localhost", Port: 8080}},
		{name: "valid IPv4", input: "127.0.0.1:9090", expectedAddr: NetAddress{Host: "127.0.0.1", Port: 9090}},
		{name: "all interfaces", input: ":8080", expectedAddr: NetAddress{Port: 8080}},
		{name: "missing colon", input: "localhost8080", expectError: true},
		{name: "non-numeric port", input: "localhost:http", expectError: true},
		{name: "zero port", input: "localhost:0", expectError: true},
		{name: "port out of range", input: "localhost:70000", expectError: true},
		{name: "bad host", input: "not-an-ip:80", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var addr NetAddress
			err := addr.Set(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				assert.Equal(t, NetAddress{}, addr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedAddr, addr)
		})
	}
}

func TestParseFlags(t *testing.T) {
	cfg, err := parseFlags(newTestFlagSet(), []string{
		"-a", "127.0.0.1:9000",
		"-d", "postgres://localhost/files",
		"-db-driver", "postgres",
		"-objects-driver", "memory",
		"-s3-endpoint", "s3.local:9000",
		"-s3-bucket", "blobs",
		"-s3-access-key", "ak",
		"-s3-secret-key", "sk",
		"-s3-ssl",
		"-config", "/etc/keeper.json",
		"-token-sign-key", "sign",
		"-token-issuer", "issuer",
		"-token-duration", "2h",
		"-request-timeout", "15s",
		"-max-upload-size", "4096",
		"-retry-max-elapsed", "3s",
	})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.HTTPAddress)
	assert.Equal(t, 15*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, int64(4096), cfg.Server.MaxUploadSize)
	assert.Equal(t, "postgres://localhost/files", cfg.Storage.DB.DSN)
	assert.Equal(t, "postgres", cfg.Storage.DB.Driver)
	assert.Equal(t, "memory", cfg.Storage.Objects.Driver)
	assert.Equal(t, "s3.local:9000", cfg.Storage.Objects.Endpoint)
	assert.Equal(t, "blobs", cfg.Storage.Objects.Bucket)
	assert.Equal(t, "ak", cfg.Storage.Objects.AccessKeyID)
	assert.Equal(t, "sk", cfg.Storage.Objects.SecretAccessKey)
	assert.True(t, cfg.Storage.Objects.UseSSL)
	assert.Equal(t, "/etc/keeper.json", cfg.JSONFilePath)
	assert.Equal(t, "sign", cfg.App.TokenSignKey)
	assert.Equal(t, "issuer", cfg.App.TokenIssuer)
	assert.Equal(t, 2*time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, 3*time.Second, cfg.Workers.RetryMaxElapsed)
}

func TestParseFlags_NoArgs(t *testing.T) {
	cfg, err := parseFlags(newTestFlagSet(), nil)
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseFlags_InvalidAddress(t *testing.T) {
	_, err := parseFlags(newTestFlagSet(), []string{"-a", "localhost"})
	assert.Error(t, err)
}

func TestParseFlags_ShortConfigAlias(t *testing.T) {
	cfg, err := parseFlags(newTestFlagSet(), []string{"-c", "cfg.json"})
	require.NoError(t, err)
	assert.Equal(t, "cfg.json", cfg.JSONFilePath)
}
