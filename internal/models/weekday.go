package models

import (
	"fmt"
	"strings"
)

// Day numbering follows the schedule data model: 0=Sunday .. 6=Saturday.
var weekdayNames = [7]string{
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

var weekdayTokens = map[string]int{
	"sunday": 0, "sun": 0,
	"monday": 1, "mon": 1,
	"tuesday": 2, "tue": 2,
	"wednesday": 3, "wed": 3,
	"thursday": 4, "thu": 4,
	"friday": 5, "fri": 5,
	"saturday": 6, "sat": 6,
}

func WeekdayName(day int) string {
	if day < 0 || day > 6 {
		return "Unknown"
	}
	return weekdayNames[day]
}

// ParseWeekday resolves a case-insensitive day name or three-letter
// abbreviation to its day code.
func ParseWeekday(token string) (int, error) {
	day, ok := weekdayTokens[strings.ToLower(strings.TrimSpace(token))]
	if !ok {
		return 0, fmt.Errorf("invalid day: %s", token)
	}
	return day, nil
}
