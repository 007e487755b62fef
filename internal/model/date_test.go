package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-01-15")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-15", d.String())

	_, err = ParseDate("15/01/2025")
	assert.Error(t, err)
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.April, 1)
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-04-01"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, d.String(), back.String())
}

func TestDate_UnmarshalRFC3339(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-01-15T10:30:00Z"`), &d))
	assert.Equal(t, "2025-01-15", d.String())
}

func TestDate_UnmarshalNull(t *testing.T) {
	d := NewDate(2025, time.March, 1)
	require.NoError(t, d.UnmarshalJSON([]byte("null")))
	assert.Equal(t, "2025-03-01", d.String())
}
