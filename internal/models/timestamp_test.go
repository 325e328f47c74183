package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatParse_Roundtrip(t *testing.T) {
	original := time.Date(2026, 3, 15, 18, 42, 0, 0, time.Local)

	parsed, err := ParseTime(FormatTime(original))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(original))
}

func TestParseTime_RejectsForeignFormats(t *testing.T) {
	for _, input := range []string{
		"",
		"2026-03-15 18:42",
		"15.03.2026",
		"yesterday",
	} {
		_, err := ParseTime(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestNow_MatchesLayout(t *testing.T) {
	parsed, err := ParseTime(Now())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), parsed, time.Minute+time.Second)
}
