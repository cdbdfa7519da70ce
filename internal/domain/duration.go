package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// WorkingDaysPerWeek converts week-denominated durations.
const WorkingDaysPerWeek = 5

// ParseWorkDuration parses "3", "3d" or "2w" into working days.
func ParseWorkDuration(s string) (int, error) {
	raw := s
	s = strings.TrimSpace(strings.ToLower(s))
	mult := 1
	switch {
	case strings.HasSuffix(s, "w"):
		mult = WorkingDaysPerWeek
		s = strings.TrimSuffix(s, "w")
	case strings.HasSuffix(s, "d"):
		s = strings.TrimSuffix(s, "d")
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid duration %q (expected a positive number of days or weeks, e.g. 3d or 2w)", raw)
	}
	return n * mult, nil
}

// FormatWorkDuration renders whole weeks as "Nw" and anything else as "Nd".
func FormatWorkDuration(days int) string {
	if days > 0 && days%WorkingDaysPerWeek == 0 {
		return fmt.Sprintf("%dw", days/WorkingDaysPerWeek)
	}
	return fmt.Sprintf("%dd", days)
}
