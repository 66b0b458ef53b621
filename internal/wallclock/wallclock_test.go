package wallclock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMinutes(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"16:45", 1005, false},
		{"24:00", 1440, false},
		{"9am", 0, true},
		{"25:00", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMinutes(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "00:00", FormatMinutes(0))
	assert.Equal(t, "09:05", FormatMinutes(545))
	assert.Equal(t, "16:30", FormatMinutes(990))
}

func TestWeekday(t *testing.T) {
	// 2026-10-18 is a Sunday.
	wd, err := Weekday("2026-10-18")
	require.NoError(t, err)
	assert.Equal(t, 0, wd)

	wd, err = Weekday("2026-10-19")
	require.NoError(t, err)
	assert.Equal(t, 1, wd)

	_, err = Weekday("2026-02-30")
	assert.Error(t, err)
}

func TestCombine(t *testing.T) {
	got, err := Combine("2026-10-19", "14:30", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 19, 14, 30, 0, 0, time.UTC), got)

	_, err = Combine("2026-10-19", "2pm", time.UTC)
	assert.Error(t, err)
}

func TestLocationFallsBack(t *testing.T) {
	assert.NotNil(t, Location("Not/AZone"))
	assert.False(t, IsValid(""))
}
