package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clouddrive/internal/domain"
)

type recordingSink struct {
	tokens []string
}

func (s *recordingSink) SetToken(token string) {
	s.tokens = append(s.tokens, token)
}

func testUser() *domain.User {
	return &domain.User{ID: "u1", Email: "user@example.com", FirstName: "Ada", IsActivated: true}
}

func TestEstablishThenLoad(t *testing.T) {
	dir := t.TempDir()
	sink := &recordingSink{}

	first := NewStore(dir, sink)
	require.NoError(t, first.Establish("tok-123", testUser()))
	require.True(t, first.Authenticated())
	assert.Equal(t, []string{"tok-123"}, sink.tokens)

	second := NewStore(dir, sink)
	second.Load()
	require.True(t, second.Authenticated())
	assert.Equal(t, "tok-123", second.Token())
	assert.Equal(t, "user@example.com", second.User().Email)
	assert.Equal(t, []string{"tok-123", "tok-123"}, sink.tokens)
}

func TestLoadMissingFilesIsSignedOut(t *testing.T) {
	store := NewStore(t.TempDir(), nil)
	store.Load()
	assert.False(t, store.Authenticated())
}

func TestLoadCorruptProfileClearsBoth(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "token"), []byte("tok"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "profile.json"), []byte("{not json"), 0o600))

	store := NewStore(dir, nil)
	store.Load()

	assert.False(t, store.Authenticated())
	_, err := os.Stat(filepath.Join(dir, "token"))
	assert.True(t, os.IsNotExist(err), "token file must be removed")
	_, err = os.Stat(filepath.Join(dir, "profile.json"))
	assert.True(t, os.IsNotExist(err), "profile file must be removed")
}

func TestLoadHalfPairClearsBoth(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "token"), []byte("tok"), 0o600))

	store := NewStore(dir, nil)
	store.Load()
	assert.False(t, store.Authenticated())
	_, err := os.Stat(filepath.Join(dir, "token"))
	assert.True(t, os.IsNotExist(err))
}

func TestClearIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	sink := &recordingSink{}
	store := NewStore(dir, sink)
	require.NoError(t, store.Establish("tok", testUser()))

	store.Clear()
	assert.False(t, store.Authenticated())
	store.Clear()
	assert.False(t, store.Authenticated())
	assert.Equal(t, []string{"tok", "", ""}, sink.tokens)
}

func TestUpdateUserKeepsToken(t *testing.T) {
	store := NewStore(t.TempDir(), nil)
	require.NoError(t, store.Establish("tok", testUser()))

	updated := testUser()
	updated.LastName = "Lovelace"
	require.NoError(t, store.UpdateUser(updated))

	assert.Equal(t, "tok", store.Token())
	assert.Equal(t, "Lovelace", store.User().LastName)
}

func TestUpdateUserWithoutSession(t *testing.T) {
	store := NewStore(t.TempDir(), nil)
	assert.Error(t, store.UpdateUser(testUser()))
}
