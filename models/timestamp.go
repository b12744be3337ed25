package models

import (
	"encoding/json"
	"time"
)

// Timestamp decodes the store's datetime and date fields. RFC 3339 datetimes and plain
// YYYY-MM-DD dates are accepted; anything else, including null, decodes to the zero time.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{time.RFC3339Nano, time.DateOnly}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	t.Time = time.Time{}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return nil
}
