package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractPrice(t *testing.T) {
	price := ExtractPrice("Total comes to $45,000 including materials")
	require.NotNil(t, price)
	require.Equal(t, 45000.0, *price)

	price = ExtractPrice("Labor is $1,250.50 per week")
	require.NotNil(t, price)
	require.Equal(t, 1250.50, *price)

	// first figure wins
	price = ExtractPrice("Base $10,000, options add $2,500")
	require.NotNil(t, price)
	require.Equal(t, 10000.0, *price)

	require.Nil(t, ExtractPrice("pricing to be confirmed"))
	require.Nil(t, ExtractPrice(""))
}

func TestExtractDuration(t *testing.T) {
	require.Equal(t, "6 weeks", ExtractDuration("Completion in 6 weeks from mobilization"))
	require.Equal(t, "3 months", ExtractDuration("Expected timeline: 3 months"))
	require.Equal(t, "10 days", ExtractDuration("Punch list done within 10 days"))
	require.Equal(t, "2 Weeks", ExtractDuration("Duration: 2 Weeks"))
	require.Equal(t, "", ExtractDuration("timeline not specified"))
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("a", maxPromptText+500)
	require.Len(t, truncate(long, maxPromptText), maxPromptText)
	require.Equal(t, "short", truncate("short", maxPromptText))
}
