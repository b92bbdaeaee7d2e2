package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreCreateTouchDestroy(t *testing.T) {
	store := NewStore(time.Minute)

	id, err := store.Create()
	require.NoError(t, err)
	require.NotEmpty(t, id)

	assert.True(t, store.Touch(id))

	store.Destroy(id)
	assert.False(t, store.Touch(id), "destroyed session must not touch")
}

func TestStoreTouchUnknownID(t *testing.T) {
	store := NewStore(time.Minute)
	assert.False(t, store.Touch("no-such-session"))
}

func TestStoreLazyExpiry(t *testing.T) {
	store := NewStore(10 * time.Millisecond)

	id, err := store.Create()
	require.NoError(t, err)

	time.Sleep(25 * time.Millisecond)
	assert.False(t, store.Touch(id), "expired session must not touch")
	assert.Zero(t, store.Len(), "expired entry must be removed on access")
}

func TestStoreSlidingExpiry(t *testing.T) {
	store := NewStore(40 * time.Millisecond)

	id, err := store.Create()
	require.NoError(t, err)

	// keep touching past the original TTL; each touch renews
	for i := 0; i < 4; i++ {
		time.Sleep(20 * time.Millisecond)
		require.True(t, store.Touch(id), "touch %d should renew the session", i)
	}
}

func TestStoreSweepDropsExpired(t *testing.T) {
	store := NewStore(10 * time.Millisecond)

	_, err := store.Create()
	require.NoError(t, err)
	_, err = store.Create()
	require.NoError(t, err)
	require.Equal(t, 2, store.Len())

	time.Sleep(25 * time.Millisecond)
	store.sweep()
	assert.Zero(t, store.Len())
}

func TestLoadOrCreateKeyGeneratesOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session_key.bin")

	key, err := LoadOrCreateKey(path)
	require.NoError(t, err)
	require.Len(t, key, KeyLen)

	again, err := LoadOrCreateKey(path)
	require.NoError(t, err)
	assert.Equal(t, key, again, "existing key must be reused unmodified")
}

func TestLoadOrCreateKeyRejectsWrongLength(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session_key.bin")
	require.NoError(t, os.WriteFile(path, []byte("short"), 0o600))

	_, err := LoadOrCreateKey(path)
	assert.Error(t, err)
}
