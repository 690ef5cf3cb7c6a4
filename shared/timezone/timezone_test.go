package timezone_test

import (
	"fleetdesk/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty falls back to UTC", input: "", expected: "UTC"},
		{name: "unknown falls back to UTC", input: "Mars/Olympus_Mons", expected: "UTC"},
		{name: "IANA name", input: "Asia/Jakarta", expected: "Asia/Jakarta"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, timezone.Load(tt.input).String())
		})
	}
}

func TestDateOf(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	// 01:30 on the 11th in Jakarta is still the 10th in UTC.
	local := time.Date(2024, 6, 11, 1, 30, 0, 0, jakarta)

	date := timezone.DateOf(local)

	assert.Equal(t, time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC), date)
}

func TestToday(t *testing.T) {
	today := timezone.Today()

	assert.Equal(t, time.UTC, today.Location())
	assert.Zero(t, today.Hour())
	assert.Equal(t, timezone.Now().Day(), today.Day())
	assert.NotNil(t, timezone.GetLocation())
}
