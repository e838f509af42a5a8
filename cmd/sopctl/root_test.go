package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateArg_ConvertsToRFC3339(t *testing.T) {
	got, err := dateArg("2026-01-15")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-15T00:00:00Z", got)
}

func TestDateArg_RejectsOtherFormats(t *testing.T) {
	for _, bad := range []string{"15/01/2026", "2026-01-15T00:00:00Z", "january", ""} {
		_, err := dateArg(bad)
		assert.Error(t, err, "input %q", bad)
	}
}
