package auth_test

import (
	"sync"
	"testing"
	"time"

	"github.com/fivetwenty-io/wix-templates/internal/auth"
	"github.com/stretchr/testify/assert"
)

func TestToken_Valid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		token    *auth.Token
		expected bool
	}{
		{name: "nil token", token: nil, expected: false},
		{name: "empty access token", token: &auth.Token{}, expected: false},
		{name: "visitor token without expiry", token: &auth.Token{AccessToken: "visitor"}, expected: true},
		{
			name:     "future expiry",
			token:    &auth.Token{AccessToken: "visitor", ExpiresAt: time.Now().Add(4 * time.Hour)},
			expected: true,
		},
		{
			name:     "expired",
			token:    &auth.Token{AccessToken: "visitor", ExpiresAt: time.Now().Add(-time.Minute)},
			expected: false,
		},
		{
			name:     "inside expiry buffer",
			token:    &auth.Token{AccessToken: "visitor", ExpiresAt: time.Now().Add(10 * time.Second)},
			expected: false,
		},
		{
			name:     "just outside expiry buffer",
			token:    &auth.Token{AccessToken: "visitor", ExpiresAt: time.Now().Add(45 * time.Second)},
			expected: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.token.Valid())
		})
	}
}

func TestTokenStore(t *testing.T) {
	t.Parallel()

	t.Run("new store is empty", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, auth.NewTokenStore().Get())
	})

	t.Run("set get and clear", func(t *testing.T) {
		t.Parallel()

		store := auth.NewTokenStore()
		store.Set(&auth.Token{AccessToken: "member", RefreshToken: "member-refresh"})

		retrieved := store.Get()
		if assert.NotNil(t, retrieved) {
			assert.Equal(t, "member", retrieved.AccessToken)
			assert.Equal(t, "member-refresh", retrieved.RefreshToken)
		}

		store.Clear()
		assert.Nil(t, store.Get())
	})

	t.Run("concurrent access", func(t *testing.T) {
		t.Parallel()

		store := auth.NewTokenStore()

		var wg sync.WaitGroup

		for _, value := range []string{"token-1", "token-2"} {
			value := value
			wg.Add(2)

			go func() {
				defer wg.Done()

				for i := 0; i < 100; i++ {
					store.Set(&auth.Token{AccessToken: value})
				}
			}()

			go func() {
				defer wg.Done()

				for i := 0; i < 100; i++ {
					_ = store.Get()
				}
			}()
		}

		wg.Wait()

		final := store.Get()
		if assert.NotNil(t, final) {
			assert.Contains(t, []string{"token-1", "token-2"}, final.AccessToken)
		}
	})
}
