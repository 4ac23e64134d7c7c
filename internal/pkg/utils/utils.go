package utils

import (
	"regexp"
	"strconv"
)

var isoDurationPattern = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?`)

// ParseISODurationMinutes converts an ISO-8601 duration of the form
// "PT<h>H<m>M" to total minutes, either component optional.
// Example: "PT2H30M" -> 150, "PT45M" -> 45, "PT" -> 0
// Malformed input never fails, it degrades to 0.
func ParseISODurationMinutes(duration string) int {
	match := isoDurationPattern.FindStringSubmatch(duration)
	if match == nil {
		return 0
	}

	hours := 0
	if match[1] != "" {
		hours, _ = strconv.Atoi(match[1])
	}

	minutes := 0
	if match[2] != "" {
		minutes, _ = strconv.Atoi(match[2])
	}

	return hours*60 + minutes
}
