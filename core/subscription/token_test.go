package subscription_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/newsletter/core/subscription"
)

func TestNewToken(t *testing.T) {
	t.Parallel()

	t.Run("fixed length alphanumeric", func(t *testing.T) {
		t.Parallel()

		token, err := subscription.NewToken()
		require.NoError(t, err)
		assert.Len(t, token, subscription.TokenLength)
		for _, c := range token {
			isAlnum := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
			assert.True(t, isAlnum, "unexpected character %q", c)
		}
	})

	t.Run("tokens do not repeat", func(t *testing.T) {
		t.Parallel()

		seen := make(map[string]struct{})
		for i := 0; i < 1000; i++ {
			token, err := subscription.NewToken()
			require.NoError(t, err)
			_, dup := seen[token]
			require.False(t, dup, "duplicate token %s", token)
			seen[token] = struct{}{}
		}
	})
}
