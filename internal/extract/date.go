package extract

import (
	"fmt"
	"regexp"
	"strconv"
)

// Date is a calendar date found in a file name.
type Date struct {
	Year  int
	Month int
	Day   int
	// Start and End delimit the matched text in the searched string.
	Start int
	End   int
}

// Compact returns the six-digit YYMMDD form used for matching.
func (d Date) Compact() string {
	return fmt.Sprintf("%02d%02d%02d", d.Year%100, d.Month, d.Day)
}

type dateShape struct {
	pattern   *regexp.Regexp
	shortYear bool
}

// Shapes are tried in priority order; the first valid match wins.
var dateShapes = []dateShape{
	{pattern: regexp.MustCompile(`(?:^|\D)(\d{4})[.-](\d{2})[.-](\d{2})(?:\D|$)`)},
	{pattern: regexp.MustCompile(`(?:^|\D)(\d{2})[.-](\d{2})[.-](\d{2})(?:\D|$)`), shortYear: true},
	{pattern: regexp.MustCompile(`(?:^|\D)(\d{4})(\d{2})(\d{2})(?:\D|$)`)},
}

// ParseDate searches text for YYYY-MM-DD, then YY-MM-DD, then YYYYMMDD.
// Dots and dashes are both accepted as separators.
func ParseDate(text string) (Date, bool) {
	for _, shape := range dateShapes {
		// Resume at the end of the day digits so the trailing boundary rune
		// can lead the next candidate.
		for pos := 0; pos < len(text); {
			m := shape.pattern.FindStringSubmatchIndex(text[pos:])
			if m == nil {
				break
			}
			start, end := pos+m[2], pos+m[7]
			year, _ := strconv.Atoi(text[start : pos+m[3]])
			month, _ := strconv.Atoi(text[pos+m[4] : pos+m[5]])
			day, _ := strconv.Atoi(text[pos+m[6] : end])
			if shape.shortYear {
				year += 2000
			}
			if validDate(year, month, day) {
				return Date{Year: year, Month: month, Day: day, Start: start, End: end}, true
			}
			pos = end
		}
	}
	return Date{}, false
}

func validDate(year, month, day int) bool {
	if year < 1900 || year > 2099 {
		return false
	}
	if month < 1 || month > 12 {
		return false
	}
	return day >= 1 && day <= daysIn(year, month)
}

func daysIn(year, month int) int {
	switch month {
	case 2:
		if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}
