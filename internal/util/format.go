package util

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
)

// FormatNumber groups thousands with commas
func FormatNumber(n int) string {
	s := strconv.Itoa(n)
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}
	if len(s) <= 3 {
		if negative {
			return "-" + s
		}
		return s
	}

	var result []byte
	for i, digit := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, digit)
	}
	if negative {
		return "-" + string(result)
	}
	return string(result)
}

// FormatDuration renders seconds as [Nd][HHh][MMm]SSs. Larger units are only
// shown once they or a larger unit are non-zero; seconds are floored.
func FormatDuration(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	total := uint64(math.Floor(seconds))

	days := total / secondsPerDay
	hours := (total % secondsPerDay) / secondsPerHour
	minutes := (total % secondsPerHour) / secondsPerMinute
	secs := total % secondsPerMinute

	var b strings.Builder
	if days != 0 {
		fmt.Fprintf(&b, "%dd", days)
	}
	if hours != 0 || days != 0 {
		fmt.Fprintf(&b, "%02dh", hours)
	}
	if minutes != 0 || hours != 0 || days != 0 {
		fmt.Fprintf(&b, "%02dm", minutes)
	}
	fmt.Fprintf(&b, "%02ds", secs)
	return b.String()
}

// FormatSeconds renders a float with five significant digits, like %.5g
func FormatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'g', 5, 64)
}

// FormatPercent renders a percentage with two decimals
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.2f", p)
}

// SecondsToDuration converts fractional seconds to a time.Duration,
// rounding to the nearest nanosecond
func SecondsToDuration(seconds float64) time.Duration {
	return time.Duration(math.Round(seconds * float64(time.Second)))
}
