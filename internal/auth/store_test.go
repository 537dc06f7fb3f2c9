package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	session := &Session{
		ID:        "abc",
		Email:     "saloni@example.com",
		Token:     &oauth2.Token{AccessToken: "tok"},
		CreatedAt: time.Now(),
	}

	store.Put(session)
	got, ok := store.Get("abc")
	require.True(t, ok)
	assert.Equal(t, session, got)

	store.Delete("abc")
	_, ok = store.Get("abc")
	assert.False(t, ok)
}

func TestMemoryStoreUnknownID(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	_, ok := store.Get("nope")
	assert.False(t, ok)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(time.Millisecond)
	store.Put(&Session{ID: "old", CreatedAt: time.Now().Add(-time.Minute)})

	_, ok := store.Get("old")
	assert.False(t, ok)
}
