package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMovementID(t *testing.T) {
	tests := []struct {
		year, seq int
		want      string
	}{
		{2025, 1, "2025-M0001"},
		{2025, 99, "2025-M0099"},
		{2024, 12345, "2024-M12345"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMovementID(tt.year, tt.seq))
	}
}

func TestParseMovementID(t *testing.T) {
	year, seq, err := ParseMovementID("2025-M0042")
	require.NoError(t, err)
	assert.Equal(t, 2025, year)
	assert.Equal(t, 42, seq)
}

func TestParseMovementID_Errors(t *testing.T) {
	badInputs := []string{
		"",
		"2025-0042",
		"xxxx-M0001",
		"2025-Mabc",
	}
	for _, input := range badInputs {
		_, _, err := ParseMovementID(input)
		assert.Error(t, err, "expected error for input: %s", input)
	}
}

func TestNextMovementSeq(t *testing.T) {
	assert.Equal(t, 1, NextMovementSeq(nil))
	assert.Equal(t, 8, NextMovementSeq([]string{"2025-M0003", "garbage", "2025-M0007"}))
}

func TestNewActivityID(t *testing.T) {
	a := NewActivityID()
	b := NewActivityID()
	assert.NotEqual(t, a, b)
	assert.True(t, ValidActivityID(a))
	assert.False(t, ValidActivityID("not-a-uuid"))
}
