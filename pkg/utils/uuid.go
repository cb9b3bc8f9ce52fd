package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// Slugify converts a string to a URL-friendly slug
func Slugify(s string) string {
	// Convert to lowercase
	s = strings.ToLower(s)

	// Replace spaces with hyphens
	s = strings.ReplaceAll(s, " ", "-")

	// Remove non-alphanumeric characters except hyphens
	reg := regexp.MustCompile("[^a-z0-9-]")
	s = reg.ReplaceAllString(s, "")

	// Remove multiple consecutive hyphens
	reg = regexp.MustCompile("-+")
	s = reg.ReplaceAllString(s, "-")

	// Trim hyphens from start and end
	s = strings.Trim(s, "-")

	return s
}

// FormatSequenceNumber formats a sequence value as a human-readable
// document number, e.g. FormatSequenceNumber("CMD", 123) == "CMD-000123".
// Uniqueness is enforced by the sequences table plus a unique column
// constraint, not by this formatting.
func FormatSequenceNumber(prefix string, value int64) string {
	return fmt.Sprintf("%s-%06d", prefix, value)
}
