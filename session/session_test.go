package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, userID int, exp time.Time) string {
	t.Helper()
	claims := Claims{UserID: userID, RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-secret"))
	require.NoError(t, err)
	return token
}

func TestStore_SaveLoadClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewStore(path)

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoSession)

	saved := &Session{Token: signed(t, 7, time.Now().Add(30*time.Minute)), Email: "a@b.c", SavedAt: time.Now().UTC().Truncate(time.Second)}
	require.NoError(t, store.Save(saved))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, saved.Token, loaded.Token)
	assert.Equal(t, "a@b.c", loaded.Email)
	assert.True(t, saved.SavedAt.Equal(loaded.SavedAt))

	require.NoError(t, store.Clear())
	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoSession)

	// clearing twice is fine
	assert.NoError(t, store.Clear())
}

func TestStore_LoadCorrupted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewStore(path).Load()
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoSession)
}

func TestSession_Expiry(t *testing.T) {
	now := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)

	valid := &Session{Token: signed(t, 7, now.Add(30*time.Minute))}
	assert.False(t, valid.Expired(now))
	assert.True(t, valid.Expired(now.Add(31*time.Minute)))
	assert.Equal(t, 7, valid.UserID())

	exp, ok := valid.ExpiresAt()
	assert.True(t, ok)
	assert.True(t, exp.Equal(now.Add(30*time.Minute)))

	garbage := &Session{Token: "not-a-jwt"}
	assert.False(t, garbage.Expired(now))
	assert.Equal(t, 0, garbage.UserID())
}

func TestParseClaims(t *testing.T) {
	claims, err := ParseClaims(signed(t, 42, time.Now().Add(time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)

	_, err = ParseClaims("a.b")
	assert.Error(t, err)
}
