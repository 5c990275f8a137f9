package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractGaps(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    Gaps
		wantErr bool
	}{
		{
			name:    "no gaps",
			text:    "abc def ghi",
			wantErr: true,
		},
		{
			name:    "unclosed gap",
			text:    "abc [[def ghi",
			wantErr: true,
		},
		{
			name:    "empty answer",
			text:    "abc [[ |hint]] ghi",
			wantErr: true,
		},
		{
			name:    "closing brackets before a gap",
			text:    "abc ]] [[x]] def",
			wantErr: true,
		},
		{
			name:    "closing brackets after the last gap",
			text:    "abc [[x]] ]]",
			wantErr: true,
		},
		{
			name:    "closing brackets without any gap",
			text:    "abc ]] def",
			wantErr: true,
		},
		{
			name:    "nested gap",
			text:    "[[a [[b]] c]]",
			wantErr: true,
		},
		{
			name: "single gap",
			text: "abc [[def]] ghi",
			want: Gaps{
				TextParts: []string{"abc", "ghi"},
				Answers:   []string{"def"},
				Hints:     []string{""},
				Notes:     []string{""},
			},
		},
		{
			name: "gap with hint and note",
			text: "abc [[def]] ghi [[jkl|123|456]] mno",
			want: Gaps{
				TextParts: []string{"abc", "ghi", "mno"},
				Answers:   []string{"def", "jkl"},
				Hints:     []string{"", "123"},
				Notes:     []string{"", "456"},
			},
		},
		{
			name: "gap at the end",
			text: "abc [[def]] ghi [[jkl|123|456]]",
			want: Gaps{
				TextParts: []string{"abc", "ghi", ""},
				Answers:   []string{"def", "jkl"},
				Hints:     []string{"", "123"},
				Notes:     []string{"", "456"},
			},
		},
		{
			name: "gap at the beginning",
			text: "[[def]] ghi [[ jkl | 123 ]] mno",
			want: Gaps{
				TextParts: []string{"", "ghi", "mno"},
				Answers:   []string{"def", "jkl"},
				Hints:     []string{"", "123"},
				Notes:     []string{"", ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractGaps(tt.text)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidGaps)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(got.Answers)+1, len(got.TextParts))
		})
	}
}
