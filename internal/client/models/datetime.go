package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// datetimeLayouts lists the timestamp shapes the server is known to emit:
// RFC 3339, naive ISO 8601 (no zone), and bare dates.
var datetimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Datetime is a time.Time that unmarshals the server's timestamp formats.
type Datetime struct {
	time.Time
}

func NewDatetime(t time.Time) *Datetime {
	return &Datetime{Time: t}
}

func (d Datetime) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(time.RFC3339))
}

func (d *Datetime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}
