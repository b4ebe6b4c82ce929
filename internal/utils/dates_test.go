package utils

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCalendarDate(t *testing.T) {
	// Метка времени усекается до начала дня в UTC.
	caracas := time.FixedZone("VET", -4*60*60)
	d := NewCalendarDate(time.Date(2024, 3, 11, 22, 30, 0, 0, caracas))

	assert.Equal(t, "2024-03-12", d.String())
}

func TestParseCalendarDate(t *testing.T) {
	d, err := ParseCalendarDate("2024-03-11")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-11", d.String())

	_, err = ParseCalendarDate("11-03-2024")
	assert.Error(t, err)

	_, err = ParseCalendarDate("")
	assert.Error(t, err)
}

func TestCalendarDateNext(t *testing.T) {
	d, err := ParseCalendarDate("2024-02-28")
	require.NoError(t, err)

	// Високосный год.
	assert.Equal(t, "2024-02-29", d.Next().String())
	assert.Equal(t, "2024-03-01", d.Next().Next().String())
	assert.True(t, d.Before(d.Next()))
	assert.True(t, d.Equal(d))
}

func TestCalendarDateJSON(t *testing.T) {
	d, err := ParseCalendarDate("2024-03-11")
	require.NoError(t, err)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-11"`, string(data))

	var parsed CalendarDate
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.True(t, parsed.Equal(d))

	assert.Error(t, json.Unmarshal([]byte(`"not-a-date"`), &parsed))
}
