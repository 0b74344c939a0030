package service

import (
	"regexp"
	"time"
)

const DateLayout = "2006-01-02"

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsValidDate reports whether s is a real calendar date written exactly as YYYY-MM-DD.
func IsValidDate(s string) bool {
	if !datePattern.MatchString(s) {
		return false
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return false
	}
	return d.Format(DateLayout) == s
}
