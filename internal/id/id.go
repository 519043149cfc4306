package id

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// FormatMovementID returns a movement ID like "2025-M0007".
func FormatMovementID(year, seq int) string {
	return fmt.Sprintf("%04d-M%04d", year, seq)
}

// ParseMovementID parses "2025-M0007" into year and sequence.
func ParseMovementID(id string) (year, seq int, err error) {
	parts := strings.SplitN(id, "-M", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid movement ID format: %q", id)
	}

	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year in movement ID %q: %w", id, err)
	}

	seq, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid sequence in movement ID %q: %w", id, err)
	}

	return year, seq, nil
}

// NextMovementSeq returns one past the highest sequence among ids.
// Unparseable ids are ignored.
func NextMovementSeq(ids []string) int {
	maxSeq := 0
	for _, s := range ids {
		_, seq, err := ParseMovementID(s)
		if err != nil {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq + 1
}

// NewActivityID returns a random activity ID.
func NewActivityID() string {
	return uuid.New().String()
}

// ValidActivityID reports whether s looks like an ID from NewActivityID.
func ValidActivityID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
