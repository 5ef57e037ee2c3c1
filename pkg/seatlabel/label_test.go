package seatlabel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected Label
		wantErr  bool
	}{
		{name: "two token prefix", input: "A B 007", expected: Label{Prefix: "A B", Number: 7}},
		{name: "single token prefix", input: "Z 137", expected: Label{Prefix: "Z", Number: 137}},
		{name: "four digit suffix", input: "A B 1000", expected: Label{Prefix: "A B", Number: 1000}},
		{name: "no prefix", input: "042", expected: Label{Prefix: "", Number: 42}},
		{name: "empty", input: "  ", wantErr: true},
		{name: "non numeric suffix", input: "A B C", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidLabel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestSuccessor(t *testing.T) {
	testCases := map[string]string{
		"A B 009": "A B 010",
		"A B 099": "A B 100",
		"A B 999": "A B 1000",
		"Z 001":   "Z 002",
	}

	for input, expected := range testCases {
		got, err := Successor(input)
		require.NoError(t, err)
		assert.Equal(t, expected, got, "successor of %q", input)
	}
}

func TestFormat_Padding(t *testing.T) {
	assert.Equal(t, "A 005", Format("A", 5))
	assert.Equal(t, "A 042", Format("A", 42))
	assert.Equal(t, "A 137", Format("A", 137))
	assert.Equal(t, "A 1000", Format("A", 1000))
}

func TestExpandRange(t *testing.T) {
	labels, err := ExpandRange("A B 008", "A B 012")
	require.NoError(t, err)
	assert.Equal(t, []string{"A B 008", "A B 009", "A B 010", "A B 011", "A B 012"}, labels)

	start, _ := Parse("A B 008")
	end, _ := Parse("A B 012")
	assert.Len(t, labels, end.Number-start.Number+1)

	prev := -1
	for _, l := range labels {
		parsed, err := Parse(l)
		require.NoError(t, err)
		assert.Equal(t, "A B", parsed.Prefix)
		assert.Greater(t, parsed.Number, prev)
		prev = parsed.Number
	}
}

func TestExpandRange_SingleSeat(t *testing.T) {
	labels, err := ExpandRange("Z 001", "Z 001")
	require.NoError(t, err)
	assert.Equal(t, []string{"Z 001"}, labels)
}

func TestExpandRange_Mismatch(t *testing.T) {
	_, err := ExpandRange("A 001", "B 010")
	assert.ErrorIs(t, err, ErrRangeMismatch)

	_, err = ExpandRange("A 010", "A 001")
	assert.ErrorIs(t, err, ErrRangeMismatch)
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "Z 001", Sanitize("[Z 001]"))
	assert.Equal(t, "Z 001", Sanitize("{Z 001}"))
	assert.Equal(t, "Z 001", Sanitize("Z 001"))
}

func TestCanonical(t *testing.T) {
	assert.Equal(t, "A 001", Canonical("A 1"))
	assert.Equal(t, "A 001", Canonical("[A 001]"))
	assert.Equal(t, "A 012", Canonical("{A 12}"))
	assert.Equal(t, "lobby", Canonical("[lobby]"))
}
