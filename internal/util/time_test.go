package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeTimeProvider(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{"local timezone", "Local", false},
		{"UTC timezone", "UTC", false},
		{"named timezone", "Europe/Paris", false},
		{"empty timezone defaults to Local", "", false},
		{"invalid timezone", "Invalid/Timezone", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := InitializeTimeProvider(tt.timezone)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid timezone")
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, GetTimeProvider().Location())
		})
	}

	require.NoError(t, InitializeTimeProvider("Local"))
}

func TestTimeProviderFormat(t *testing.T) {
	tp := &TimeProvider{}
	require.NoError(t, tp.SetTimezone("UTC"))

	ts := time.Date(2024, 1, 1, 12, 30, 45, 0, time.FixedZone("X", 2*3600))
	assert.Equal(t, "10:30:45", tp.Format(ts, "15:04:05"))
	assert.Equal(t, time.UTC, tp.Location())
}

func TestParseTimestamp(t *testing.T) {
	utc := time.UTC
	tests := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{"space separated", "2024-01-01 00:00:02", time.Date(2024, 1, 1, 0, 0, 2, 0, utc)},
		{"fractional seconds", "2024-01-01 00:00:02.250", time.Date(2024, 1, 1, 0, 0, 2, 250000000, utc)},
		{"T separated", "2024-01-01T10:11:12", time.Date(2024, 1, 1, 10, 11, 12, 0, utc)},
		{"RFC3339 with offset", "2024-01-01T10:11:12+01:00", time.Date(2024, 1, 1, 9, 11, 12, 0, utc)},
		{"slashes", "2024/03/04 05:06:07", time.Date(2024, 3, 4, 5, 6, 7, 0, utc)},
		{"date only", "2024-03-04", time.Date(2024, 3, 4, 0, 0, 0, 0, utc)},
		{"surrounding spaces", "  2024-01-01 00:00:00 ", time.Date(2024, 1, 1, 0, 0, 0, 0, utc)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input, utc)
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got), "expected %v, got %v", tt.expected, got)
		})
	}
}

func TestParseTimestampUsesLocation(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	got, err := ParseTimestamp("2024-01-01 12:00:00", paris)
	require.NoError(t, err)
	assert.Equal(t, 11, got.UTC().Hour())
}

func TestParseTimestampInvalid(t *testing.T) {
	for _, input := range []string{"", "   ", "not a date", "2024-13-45 99:99:99", "12345"} {
		_, err := ParseTimestamp(input, time.UTC)
		assert.Error(t, err, "input %q", input)
	}
}
