package hours

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "bare number", input: "2.5", want: "2.5 hrs"},
		{name: "already normalized", input: "2.5 hrs", want: "2.5 hrs"},
		{name: "integer", input: "3", want: "3 hrs"},
		{name: "leading whitespace", input: "  4.25 hrs", want: "4.25 hrs"},
		{name: "odd suffix", input: "1.5 hours worked", want: "1.5 hrs"},
		{name: "empty", input: "", want: "0 hrs"},
		{name: "no numeric prefix", input: "lots", want: "0 hrs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := NormalizeDuration(tt.input)
			assert.Equal(t, tt.want, got)
			// Normalizing twice must be a no-op.
			assert.Equal(t, got, NormalizeDuration(got))
		})
	}
}

func TestParseDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{name: "with suffix", input: "2.5 hrs", want: 2.5},
		{name: "bare number", input: "3", want: 3},
		{name: "zero", input: "0 hrs", want: 0},
		{name: "malformed", input: "garbage", want: 0},
		{name: "empty", input: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, ParseDuration(tt.input), 1e-9)
		})
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "workbook format", input: "01/02/25", want: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
		{name: "long year", input: "01/02/2025", want: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
		{name: "iso", input: "2025-02-01", want: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
		{name: "padded", input: "  24/10/26 ", want: time.Date(2026, 10, 24, 0, 0, 0, 0, time.UTC)},
		{name: "garbage", input: "soon", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
		})
	}
}

func TestFormatDate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "01/02/25", FormatDate(time.Date(2025, 2, 1, 10, 30, 0, 0, time.UTC)))
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	got, err := ParseTimestamp("2025-06-10T09:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC), got.UTC())

	_, err = ParseTimestamp("last tuesday")
	require.Error(t, err)
}

func TestParseCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    ParsedCommand
		wantErr bool
	}{
		{
			name:  "full command",
			input: `log 2.5 hours for Acme "AP replacement"`,
			want:  ParsedCommand{ClientName: "Acme", DurationInHours: 2.5, WorkDescription: "AP replacement"},
		},
		{
			name:  "two-word client",
			input: `log 3 hrs for Northwind Logistics "connectivity audit"`,
			want:  ParsedCommand{ClientName: "Northwind Logistics", DurationInHours: 3, WorkDescription: "connectivity audit"},
		},
		{
			name:  "no description",
			input: "1 hour for BioGreen",
			want:  ParsedCommand{ClientName: "BioGreen", DurationInHours: 1},
		},
		{name: "no hours", input: `work for Acme "stuff"`, wantErr: true},
		{name: "no client", input: "log 2 hours", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseCommand(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}
