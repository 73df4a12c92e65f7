package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFlexTimeStringAndArrayAgree(t *testing.T) {
	var fromString, fromArray FlexTime
	require.NoError(t, json.Unmarshal([]byte(`"2026-01-15T00:00:00.000Z"`), &fromString))
	require.NoError(t, json.Unmarshal([]byte(`[2026, 1, 15, 0, 0, 0]`), &fromArray))

	require.Equal(t, 2026, fromString.Year())
	require.Equal(t, time.January, fromString.Month())
	require.Equal(t, 15, fromString.Day())
	require.True(t, fromString.Equal(fromArray.Time))
}

func TestFlexTimeArrayFull(t *testing.T) {
	var ft FlexTime
	require.NoError(t, json.Unmarshal([]byte(`[2025, 12, 31, 23, 59, 58, 500000000]`), &ft))
	require.Equal(t, time.Date(2025, time.December, 31, 23, 59, 58, 500000000, time.UTC), ft.Time)
}

func TestFlexTimeZonelessString(t *testing.T) {
	var ft FlexTime
	require.NoError(t, json.Unmarshal([]byte(`"2026-03-01T12:30:00"`), &ft))
	require.Equal(t, time.Date(2026, time.March, 1, 12, 30, 0, 0, time.UTC), ft.Time)
}

func TestFlexTimeNull(t *testing.T) {
	var ft FlexTime
	require.NoError(t, json.Unmarshal([]byte(`null`), &ft))
	require.True(t, ft.IsZero())
}

func TestFlexTimeRejectsGarbage(t *testing.T) {
	var ft FlexTime
	require.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ft))
	require.Error(t, json.Unmarshal([]byte(`[2026]`), &ft))
	require.Error(t, json.Unmarshal([]byte(`42`), &ft))
}

func TestFlexTimeMarshalRoundTrip(t *testing.T) {
	ft := NewFlexTime(time.Date(2026, time.January, 15, 8, 0, 0, 0, time.UTC))
	encoded, err := json.Marshal(ft)
	require.NoError(t, err)
	require.Equal(t, `"2026-01-15T08:00:00Z"`, string(encoded))

	var decoded FlexTime
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	require.True(t, ft.Equal(decoded.Time))
}
