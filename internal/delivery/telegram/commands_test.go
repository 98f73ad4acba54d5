package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTrackArgs(t *testing.T) {
	item, source, direction, price, err := ParseTrackArgs("AK-47 | Redline (Field-Tested) steam below 11.50")
	require.NoError(t, err)
	assert.Equal(t, "AK-47 | Redline (Field-Tested)", item)
	assert.Equal(t, "steam", source)
	assert.Equal(t, "below", direction)
	assert.Equal(t, "11.50", price)

	_, _, _, _, err = ParseTrackArgs("steam below 11.50")
	assert.ErrorIs(t, err, ErrInvalidArguments)
}

func TestParseUntrackArgs(t *testing.T) {
	item, source, err := ParseUntrackArgs("AWP | Asiimov (Field-Tested) csfloat")
	require.NoError(t, err)
	assert.Equal(t, "AWP | Asiimov (Field-Tested)", item)
	assert.Equal(t, "csfloat", source)

	_, _, err = ParseUntrackArgs("csfloat")
	assert.ErrorIs(t, err, ErrInvalidArguments)
}

func TestParseDailyArgs(t *testing.T) {
	item, source, mode, err := ParseDailyArgs("AWP | Asiimov (Field-Tested) csfloat on")
	require.NoError(t, err)
	assert.Equal(t, "AWP | Asiimov (Field-Tested)", item)
	assert.Equal(t, "csfloat", source)
	assert.Equal(t, "on", mode)

	_, _, _, err = ParseDailyArgs("csfloat on")
	assert.ErrorIs(t, err, ErrInvalidArguments)
}
