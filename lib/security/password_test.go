package security

import (
	"encoding/base64"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/argon2"
)

func TestHashAndVerifyRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))
	assert.True(t, VerifyPassword(hash, "hunter2"))
	assert.False(t, VerifyPassword(hash, "hunter3"))
	assert.False(t, VerifyPassword(hash, ""))
}

func TestHashesAreSalted(t *testing.T) {
	first, err := HashPassword("same password")
	require.NoError(t, err)
	second, err := HashPassword("same password")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestVerifyHonorsStoredParameters(t *testing.T) {
	// A hash produced with different cost settings must still verify: the
	// parameters come from the stored string, not our defaults.
	salt := []byte("somesalt")
	key := argon2.IDKey([]byte("hunter2"), salt, 1, 8*1024, 2, 16)
	b64 := base64.RawStdEncoding
	hash := fmt.Sprintf("$argon2id$v=19$m=8192,t=1,p=2$%s$%s",
		b64.EncodeToString(salt), b64.EncodeToString(key))

	assert.True(t, VerifyPassword(hash, "hunter2"))
	assert.False(t, VerifyPassword(hash, "wrong"))
}

func TestVerifyRejectsMalformedHashes(t *testing.T) {
	for _, malformed := range []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA", // wrong variant
		"$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA", // wrong version
		"$argon2id$v=19$m=19456$c2FsdA$aGFzaA",         // missing params
		"$argon2id$v=19$m=19456,t=2,p=1$!!!$aGFzaA",    // bad base64 salt
		"$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$!!!",    // bad base64 key
	} {
		assert.False(t, VerifyPassword(malformed, "whatever"), "hash %q must not verify", malformed)
	}
}
