package timeline

import (
	"strconv"
	"time"
)

// monthLayout is the key format for frames.
const monthLayout = "2006-01"

// ParseMonth derives a YYYY-MM key from a date string. A string that starts
// with a valid YYYY-MM not followed by a day is taken as is; otherwise the
// first ten characters must form a YYYY-MM-DD date.
func ParseMonth(date string) (string, bool) {
	if len(date) >= 7 && date[4] == '-' && (len(date) == 7 || date[7] != '-') {
		if ValidMonth(date[:7]) {
			return date[:7], true
		}
		return "", false
	}
	if len(date) < 10 {
		return "", false
	}
	t, err := time.Parse(time.DateOnly, date[:10])
	if err != nil {
		return "", false
	}
	return t.Format(monthLayout), true
}

// ValidMonth reports whether s is a YYYY-MM key.
func ValidMonth(s string) bool {
	_, err := time.Parse(monthLayout, s)
	return err == nil && len(s) == 7
}

// SplitMonth returns the year and two-digit month of a key. Malformed keys
// yield the whole key as the year and an empty month.
func SplitMonth(key string) (year, month string) {
	if len(key) == 7 && key[4] == '-' {
		return key[:4], key[5:]
	}
	return key, ""
}

// IsJanuary reports whether the key falls in January.
func IsJanuary(key string) bool {
	_, mm := SplitMonth(key)
	n, err := strconv.Atoi(mm)
	return err == nil && n == 1
}
