package utils

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// NormalizeDate reduces a date string to its canonical YYYY-MM-DD form.
// Accepts either a bare date or an RFC3339 timestamp.
func NormalizeDate(value string) (string, error) {
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t.Format(dateLayout), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.Format(dateLayout), nil
	}
	return "", fmt.Errorf("unrecognized date %q", value)
}
