package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	monthKeyRegex   = regexp.MustCompile(`^\d{4}-\d{2}$`)
	unsafeNameRegex = regexp.MustCompile(`[^\w.\- ]`)
)

// ValidateMonthKey validates a YYYY-MM month key
func ValidateMonthKey(key string) error {
	if !monthKeyRegex.MatchString(key) {
		return fmt.Errorf("month_key must be YYYY-MM: %s", key)
	}
	return nil
}

// SanitizeFileName strips every character outside letters, digits, underscore,
// dot, hyphen and space. Returns "file" when nothing remains.
func SanitizeFileName(name string) string {
	sanitized := strings.TrimSpace(unsafeNameRegex.ReplaceAllString(name, ""))
	sanitized = strings.Trim(sanitized, ".")
	if sanitized == "" {
		return "file"
	}
	return sanitized
}
