package seatallocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindContiguousBlock(t *testing.T) {
	tests := []struct {
		name      string
		capacity  int
		available []string
		want      []string
	}{
		{
			name:      "skips run that is too short",
			capacity:  3,
			available: []string{"Z 001", "Z 002", "Z 004", "Z 005", "Z 006"},
			want:      []string{"Z 004", "Z 005", "Z 006"},
		},
		{
			name:      "first fit, not best fit",
			capacity:  2,
			available: []string{"A 001", "A 002", "A 003", "A 007", "A 008"},
			want:      []string{"A 001", "A 002"},
		},
		{
			name:      "no run long enough",
			capacity:  3,
			available: []string{"Z 001", "Z 002", "Z 004", "Z 005"},
			want:      nil,
		},
		{
			name:      "unordered input",
			capacity:  2,
			available: []string{"B 010", "B 003", "B 011", "B 001"},
			want:      []string{"B 010", "B 011"},
		},
		{
			name:      "runs do not cross zones",
			capacity:  2,
			available: []string{"A 001", "B 002"},
			want:      nil,
		},
		{
			name:      "multi-token prefix and padding over 99",
			capacity:  3,
			available: []string{"A B 098", "A B 099", "A B 100"},
			want:      []string{"A B 098", "A B 099", "A B 100"},
		},
		{
			name:      "crosses 999 into unpadded numbers",
			capacity:  2,
			available: []string{"C 999", "C 1000"},
			want:      []string{"C 999", "C 1000"},
		},
		{
			name:      "duplicates ignored",
			capacity:  2,
			available: []string{"A 001", "A 001", "A 002"},
			want:      []string{"A 001", "A 002"},
		},
		{
			name:      "zero capacity",
			capacity:  0,
			available: []string{"A 001"},
			want:      nil,
		},
		{
			name:      "empty input",
			capacity:  1,
			available: nil,
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindContiguousBlock(tt.capacity, tt.available)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindContiguousBlock_ExactSize(t *testing.T) {
	available := []string{"Q 001", "Q 002", "Q 003", "Q 004", "Q 005", "Q 006", "Q 007", "Q 008"}

	for capacity := 1; capacity <= len(available); capacity++ {
		assert.Len(t, FindContiguousBlock(capacity, available), capacity)
	}
	assert.Empty(t, FindContiguousBlock(len(available)+1, available))
}
