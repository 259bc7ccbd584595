package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"rfc3339 millis", `"2024-06-01T10:00:00.000Z"`, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)},
		{"rfc3339 offset", `"2024-06-01T12:00:00+02:00"`, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)},
		{"seconds without zone", `"2024-06-01T10:00:30"`, time.Date(2024, 6, 1, 10, 0, 30, 0, time.UTC)},
		{"datetime-local", `"2024-06-01T10:00"`, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)},
		{"sql", `"2024-06-01 10:00:00"`, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)},
		{"date only", `"2024-06-01"`, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"null", `null`, time.Time{}},
		{"empty", `""`, time.Time{}},
		{"garbage", `"next tuesday"`, time.Time{}},
		{"number", `1717236000`, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.input), &ts))
			assert.True(t, tt.want.Equal(ts.Time), "got %v", ts.Time)
		})
	}
}

func TestEvent_UnmarshalJSON_LenientDates(t *testing.T) {
	var e Event
	err := json.Unmarshal([]byte(`{"id":3,"title":"Jazz","date":"2024-06-01T10:00","created_at":"2024-05-01 09:30:00","venue_id":"1","tags":["music"]}`), &e)
	require.NoError(t, err)

	assert.Equal(t, ID("3"), e.ID)
	assert.Equal(t, "Jazz", e.Title)
	assert.Equal(t, ID("1"), e.VenueID)
	assert.Equal(t, []string{"music"}, e.Tags)
	assert.True(t, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC).Equal(e.Date))
	assert.True(t, time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC).Equal(e.CreatedAt))
}

func TestEvent_RoundTrip(t *testing.T) {
	in := Event{ID: "1", Title: "Jazz", Date: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)}
	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out Event
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, in.Date.Equal(out.Date))
	assert.Equal(t, in.ID, out.ID)
}
