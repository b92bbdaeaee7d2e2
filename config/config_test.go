package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadLndGrpc(t *testing.T) {
	path := writeConfig(t, `
[node]
type = "lnd-grpc"

[lnd-grpc]
host = "localhost:10009"
macaroon_hex = "0201abcd"
cert_hex = "3082aa"

[api]
password_hash = "$argon2id$..."
`)

	settings, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "lnd-grpc", settings.Node.Type)
	require.NotNil(t, settings.LndGrpc)
	assert.Equal(t, "localhost:10009", settings.LndGrpc.Host)
	assert.Equal(t, "0201abcd", settings.LndGrpc.MacaroonHex)
	assert.Equal(t, "3082aa", settings.LndGrpc.CertHex)
	assert.Nil(t, settings.LndRest)
	assert.Nil(t, settings.Cln)
}

func TestLoadCertHexIsOptional(t *testing.T) {
	path := writeConfig(t, `
[node]
type = "lnd-grpc"

[lnd-grpc]
host = "localhost:10009"
macaroon_hex = "0201abcd"
`)

	settings, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, settings.LndGrpc.CertHex)
}

func TestLoadApiDefaults(t *testing.T) {
	path := writeConfig(t, `
[node]
type = "cln"

[cln]
host = "http://localhost:3001"
`)

	settings, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", settings.Api.Host)
	assert.Equal(t, 8080, settings.Api.Port)
	assert.Empty(t, settings.Api.PasswordHash)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoadMalformedToml(t *testing.T) {
	path := writeConfig(t, "[node\ntype=")
	_, err := Load(path)
	assert.Error(t, err)
}
