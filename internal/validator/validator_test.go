package validator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/patrol/internal/domain"
)

func TestValidateClean(t *testing.T) {
	ok, issues, err := New().Validate(context.Background(), "..#\n.^.\n...\n")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, issues)
}

func TestValidateIssues(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []domain.Issue
	}{
		{
			name: "missing start",
			in:   "...\n.#.",
			want: []domain.Issue{{Message: "missing start marker"}},
		},
		{
			name: "extra marker",
			in:   "^.>\n...",
			want: []domain.Issue{{Row: 0, Col: 2, Message: "extra start marker ignored"}},
		},
		{
			name: "unknown glyph",
			in:   "^.O",
			want: []domain.Issue{{Row: 0, Col: 2, Message: `unknown glyph 'O' treated as open`}},
		},
		{
			name: "ragged",
			in:   "^..\n..",
			want: []domain.Issue{{Row: 0, Col: 2, Message: "row is 3 wide, truncated to 2"}},
		},
		{
			name: "empty",
			in:   "",
			want: []domain.Issue{{Message: "map has no rows"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, issues, err := New().Validate(context.Background(), tt.in)
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Equal(t, tt.want, issues)
		})
	}
}
