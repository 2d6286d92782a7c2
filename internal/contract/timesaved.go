package contract

import (
	"fmt"
	"math"
	"strconv"
)

// FormatTimeSaved renders hours the way the savings meter shows them.
func FormatTimeSaved(hours float64) string {
	if hours < 1 {
		return fmt.Sprintf("%d minutes", int(math.Round(hours*60)))
	}

	if hours == 1 {
		return "1 hour"
	}

	if hours == math.Trunc(hours) {
		return fmt.Sprintf("%d hours", int(hours))
	}

	return strconv.FormatFloat(hours, 'f', -1, 64) + " hours"
}

func TimeSavedIcon(hours float64) string {
	switch {
	case hours >= 8:
		return "🚀"
	case hours >= 4:
		return "⚡"
	}

	return "⏰"
}

// TimeSavedCaption is the one-line meter text. Nothing is shown until some
// time has been saved.
func TimeSavedCaption(hours float64) string {
	if hours <= 0 {
		return ""
	}

	return fmt.Sprintf("%s Estimated %s of manual review saved", TimeSavedIcon(hours), FormatTimeSaved(hours))
}
