package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateTime(t *testing.T) {
	now := time.Date(2025, 3, 10, 6, 15, 0, 0, time.Local)

	tests := []struct {
		name    string
		value   string
		wantErr error
	}{
		{name: "empty", value: "", wantErr: ErrTimeRequired},
		{name: "garbage", value: "tomorrow evening", wantErr: ErrTimeRequired},
		{name: "past", value: "2025-03-09T19:00", wantErr: ErrTimeInPast},
		{name: "past wins over opening hours", value: "2025-03-10T05:00", wantErr: ErrTimeInPast},
		{name: "more than three days", value: "2025-03-13T06:16", wantErr: ErrTooFarAhead},
		{name: "too far wins over closing", value: "2025-03-20T23:00", wantErr: ErrTooFarAhead},
		{name: "seven o'clock", value: "2025-03-11T07:00", wantErr: ErrBeforeOpening},
		{name: "seven fifty nine", value: "2025-03-11T07:59", wantErr: ErrBeforeOpening},
		{name: "half past nine pm", value: "2025-03-11T21:30", wantErr: ErrAfterLastBooking},
		{name: "twenty one past one", value: "2025-03-11T21:01", wantErr: ErrAfterLastBooking},
		{name: "ten pm", value: "2025-03-11T22:00", wantErr: ErrAfterLastBooking},
		{name: "nine pm sharp", value: "2025-03-11T21:00"},
		{name: "opening", value: "2025-03-11T08:00"},
		{name: "seconds layout", value: "2025-03-11T12:00:00"},
		{name: "space layout", value: "2025-03-11 12:00"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			err := ValidateTime(testCase.value, now)
			if testCase.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, testCase.wantErr)
		})
	}
}

func TestValidateStart_AdvanceWindowBoundary(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)

	assert.NoError(t, ValidateStart(now.Add(MaxAdvance-time.Minute), now))
	assert.NoError(t, ValidateStart(now.Add(MaxAdvance), now))
	assert.ErrorIs(t, ValidateStart(now.Add(MaxAdvance+time.Minute), now), ErrTooFarAhead)
}

func TestValidateStart_HourSevenAlwaysRejected(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	for minute := 0; minute < 60; minute += 7 {
		start := time.Date(2025, 6, 2, 7, minute, 0, 0, time.UTC)
		assert.ErrorIs(t, ValidateStart(start, now), ErrBeforeOpening, "07:%02d", minute)
	}
}

func TestValidateStart_IgnoresZones(t *testing.T) {
	// Wall-clock 20:00 in a far-off zone is still 20:00 for the restaurant.
	zone := time.FixedZone("UTC+14", 14*3600)
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	start := time.Date(2025, 6, 1, 20, 0, 0, 0, zone)

	assert.NoError(t, ValidateStart(start, now))
}

func TestFormatLocalKeepsWallClock(t *testing.T) {
	zone := time.FixedZone("ICT", 7*3600)
	start := time.Date(2025, 6, 1, 19, 30, 0, 0, zone)

	assert.Equal(t, "2025-06-01T19:30:00", FormatLocal(start))
}
