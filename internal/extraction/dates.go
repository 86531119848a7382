package extraction

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/resume-agent/internal/types"
)

// monthNames maps month name prefixes to time.Month
var monthNames = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// presentWords are end-date spellings that mean "ongoing"
var presentWords = map[string]bool{
	"present": true, "current": true, "now": true, "ongoing": true, "today": true,
}

var (
	// "Jan 2020", "January 2020"
	monthYearRe = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+(\d{4})\b`)
	// "01/2020", "1/2020"
	numericMonthYearRe = regexp.MustCompile(`\b(\d{1,2})/(\d{4})\b`)
	// bare year
	yearRe = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	// a range candidate: something datelike, separator, something datelike or "present"
	rangeRe = regexp.MustCompile(`(?i)((?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{4}|\d{1,2}/\d{4}|(?:19|20)\d{2})\s*(?:-|–|—|\bto\b|\bthrough\b)\s*((?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{4}|\d{1,2}/\d{4}|(?:19|20)\d{2}|present|current|now|ongoing|today)`)
)

// ParseDate parses a single date token like "Jan 2020", "01/2020" or "2020".
// The month is zero when the token carries only a year.
func ParseDate(token string) (types.Date, bool) {
	token = strings.TrimSpace(token)

	if m := monthYearRe.FindStringSubmatch(token); m != nil {
		year, _ := strconv.Atoi(m[2])
		month := monthNames[strings.ToLower(m[1])]
		return types.Date{Year: year, Month: month}, true
	}
	if m := numericMonthYearRe.FindStringSubmatch(token); m != nil {
		monthNum, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[2])
		if monthNum >= 1 && monthNum <= 12 {
			return types.Date{Year: year, Month: time.Month(monthNum)}, true
		}
		return types.Date{Year: year}, true
	}
	if m := yearRe.FindString(token); m != "" {
		year, _ := strconv.Atoi(m)
		return types.Date{Year: year}, true
	}
	return types.Date{}, false
}

// ParseDateRange finds a date range in a line. A nil end date means the
// range is ongoing ("Present", "Current"). Returns false when the line has
// no recognizable range.
func ParseDateRange(line string) (start types.Date, end *types.Date, ok bool) {
	m := rangeRe.FindStringSubmatch(line)
	if m == nil {
		return types.Date{}, nil, false
	}

	start, ok = ParseDate(m[1])
	if !ok {
		return types.Date{}, nil, false
	}

	endToken := strings.ToLower(strings.TrimSpace(m[2]))
	if presentWords[endToken] {
		return start, nil, true
	}

	endDate, ok := ParseDate(m[2])
	if !ok {
		return start, nil, true
	}
	return start, &endDate, true
}

// HasDateRange reports whether a line contains a date range
func HasDateRange(line string) bool {
	return rangeRe.MatchString(line)
}

// stripDateRange removes the first date range from a line, for isolating
// title and organization text that shares the line with dates
func stripDateRange(line string) string {
	out := rangeRe.ReplaceAllString(line, "")
	out = strings.Trim(out, " \t|,;·•–—-")
	return strings.TrimSpace(out)
}
