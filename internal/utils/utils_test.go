package utils

import (
	"strings"
	"testing"

	"github.com/luckyroue/wheelplay-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashIdentifierNormalizes(t *testing.T) {
	base := HashIdentifier("user@example.com")
	assert.Equal(t, base, HashIdentifier("USER@EXAMPLE.COM"))
	assert.Equal(t, base, HashIdentifier("  user@example.com  "))
	assert.NotEqual(t, base, HashIdentifier("other@example.com"))
	// 64 hex characters of SHA-256.
	assert.Len(t, base, 64)
}

func TestHashIdentifierStable(t *testing.T) {
	// Fixed vector; a change here would orphan every stored hash.
	assert.Equal(t,
		"2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		HashIdentifier("hello"),
	)
}

func TestGenerateRewardCodeFormat(t *testing.T) {
	code, err := GenerateRewardCode(false)
	require.NoError(t, err)
	assert.Len(t, code, 8)
	for _, c := range code {
		assert.True(t, (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9'), "unexpected character %q", c)
	}
}

func TestGenerateRewardCodeTestPrefix(t *testing.T) {
	code, err := GenerateRewardCode(true)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(code, models.TestCodePrefix))
	assert.Len(t, code, len(models.TestCodePrefix)+8)
}

func TestGenerateRewardCodeVaries(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code, err := GenerateRewardCode(false)
		require.NoError(t, err)
		seen[code] = true
	}
	// Collisions across 100 codes in a 36^8 space would mean a broken source.
	assert.Len(t, seen, 100)
}

func TestGenerateTestToken(t *testing.T) {
	a, err := GenerateTestToken()
	require.NoError(t, err)
	b, err := GenerateTestToken()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.NotContains(t, a, "/")
	assert.NotContains(t, a, "+")
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "summer-wheel-2026", Slugify("Summer Wheel 2026"))
	assert.Equal(t, "caf-du-coin", Slugify("Café du Coin!"))
	assert.Equal(t, "trimmed", Slugify("  Trimmed  "))
}

func TestMaskIdentifier(t *testing.T) {
	assert.Equal(t, "us******om", MaskIdentifier("user@example.com"))
	assert.Equal(t, "******", MaskIdentifier("ab"))
}
