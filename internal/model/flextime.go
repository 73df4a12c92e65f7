package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// FlexTime decodes the two timestamp encodings the backend emits: an
// ISO-8601 string, or the array form [year, month, day, hour, minute,
// second, nano] with a 1-based month. It always encodes back as RFC3339.
type FlexTime struct {
	time.Time
}

func NewFlexTime(t time.Time) FlexTime {
	return FlexTime{Time: t.UTC()}
}

func (t *FlexTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	switch data[0] {
	case '"':
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		return t.parseString(raw)
	case '[':
		var parts []int
		if err := json.Unmarshal(data, &parts); err != nil {
			return err
		}
		return t.fromParts(parts)
	}
	return fmt.Errorf("unsupported timestamp encoding: %s", string(data))
}

func (t *FlexTime) parseString(raw string) error {
	// RFC3339 first, then the zone-less form LocalDateTime serializes to.
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("unsupported timestamp format: %q", raw)
}

func (t *FlexTime) fromParts(parts []int) error {
	if len(parts) < 3 {
		return fmt.Errorf("timestamp array needs at least year/month/day, got %d elements", len(parts))
	}
	padded := make([]int, 7)
	copy(padded, parts)
	t.Time = time.Date(padded[0], time.Month(padded[1]), padded[2], padded[3], padded[4], padded[5], padded[6], time.UTC)
	return nil
}

func (t FlexTime) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.UTC().Format(time.RFC3339Nano))
}

func (t FlexTime) IsZero() bool {
	return t.Time.IsZero()
}
