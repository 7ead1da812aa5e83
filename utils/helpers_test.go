package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValidEmail(t *testing.T) {
	require.True(t, IsValidEmail("sub@example.com"))
	require.True(t, IsValidEmail("first.last+tag@builders.co"))
	require.False(t, IsValidEmail("not-an-email"))
	require.False(t, IsValidEmail("spaces in@example.com"))
	require.False(t, IsValidEmail("missing@tld"))
	require.False(t, IsValidEmail(""))
}

func TestNormalizeEmail(t *testing.T) {
	require.Equal(t, "gc@example.com", NormalizeEmail("  GC@Example.COM "))
	require.Equal(t, "a@b.co", NormalizeEmail("a@b.co"))
}

func TestGenerateReferralCode(t *testing.T) {
	code := GenerateReferralCode("John Smith")
	require.Len(t, code, 7)
	require.True(t, strings.HasPrefix(code, "JOH"))
	require.Equal(t, strings.ToUpper(code), code)

	// short names are padded rather than panicking
	code = GenerateReferralCode("Al")
	require.Len(t, code, 7)
	require.True(t, strings.HasPrefix(code, "AL"))

	code = GenerateReferralCode("")
	require.Len(t, code, 7)
	require.True(t, strings.HasPrefix(code, "USR"))
}

func TestGenerateReferralCodeVaries(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		seen[GenerateReferralCode("John Smith")] = true
	}
	require.Greater(t, len(seen), 1, "codes should carry a random suffix")
}
