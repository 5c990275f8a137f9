package duration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{input: "29s", want: 29},
		{input: "1m", want: 60},
		{input: "16m", want: 16 * 60},
		{input: "1h", want: 60 * 60},
		{input: "32h", want: 32 * 60 * 60},
		{input: "1d", want: 24 * 60 * 60},
		{input: "7d", want: 7 * 24 * 60 * 60},
		{input: " 2m ", want: 120},
		{input: "", wantErr: true},
		{input: "m", wantErr: true},
		{input: "5w", wantErr: true},
		{input: "-5m", wantErr: true},
		{input: "1.5h", wantErr: true},
		{input: "106751991167300d", want: 106751991167300 * 24 * 60 * 60},
		{input: "106751991167301d", wantErr: true},
		{input: "999999999999999999d", wantErr: true},
		{input: "99999999999999999999s", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidDuration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat(t *testing.T) {
	const (
		minute = int64(60)
		hour   = 60 * minute
		day    = 24 * hour
	)
	tests := []struct {
		name    string
		seconds int64
		want    string
	}{
		{name: "zero", seconds: 0, want: "0s"},
		{name: "negative", seconds: -5, want: "0s"},
		{name: "seconds only", seconds: 27, want: "27s"},
		{name: "minutes and seconds", seconds: minute + 8, want: "1m8s"},
		{name: "hours and minutes drop seconds", seconds: 8*hour + 13*minute + 49, want: "8h13m"},
		{name: "days and hours drop the rest", seconds: 17*day + 9*hour + 25*minute + 33, want: "17d9h"},
		{name: "whole minute", seconds: minute, want: "1m"},
		{name: "whole hours", seconds: 8 * hour, want: "8h"},
		{name: "whole days", seconds: 17 * day, want: "17d"},
		{name: "days with zero hours", seconds: day + 5*minute, want: "1d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.seconds))
		})
	}
}
