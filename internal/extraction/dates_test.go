package extraction

import (
	"testing"
	"time"

	"github.com/jonathan/resume-agent/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_MonthYear(t *testing.T) {
	date, ok := ParseDate("Jan 2020")
	require.True(t, ok)
	assert.Equal(t, types.Date{Year: 2020, Month: time.January}, date)

	date, ok = ParseDate("September 2018")
	require.True(t, ok)
	assert.Equal(t, types.Date{Year: 2018, Month: time.September}, date)
}

func TestParseDate_NumericMonthYear(t *testing.T) {
	date, ok := ParseDate("03/2021")
	require.True(t, ok)
	assert.Equal(t, types.Date{Year: 2021, Month: time.March}, date)
}

func TestParseDate_BareYear(t *testing.T) {
	date, ok := ParseDate("2015")
	require.True(t, ok)
	assert.Equal(t, types.Date{Year: 2015}, date)
	assert.Zero(t, date.Month)
}

func TestParseDate_Invalid(t *testing.T) {
	_, ok := ParseDate("not a date")
	assert.False(t, ok)
}

func TestParseDateRange_ClosedRange(t *testing.T) {
	start, end, ok := ParseDateRange("Jan 2020 - Mar 2022")
	require.True(t, ok)
	assert.Equal(t, types.Date{Year: 2020, Month: time.January}, start)
	require.NotNil(t, end)
	assert.Equal(t, types.Date{Year: 2022, Month: time.March}, *end)
}

func TestParseDateRange_PresentMeansOngoing(t *testing.T) {
	start, end, ok := ParseDateRange("Jan 2020 - Present")
	require.True(t, ok)
	assert.Equal(t, 2020, start.Year)
	assert.Nil(t, end)
}

func TestParseDateRange_YearOnly(t *testing.T) {
	start, end, ok := ParseDateRange("2018 - 2020")
	require.True(t, ok)
	assert.Equal(t, types.Date{Year: 2018}, start)
	require.NotNil(t, end)
	assert.Equal(t, types.Date{Year: 2020}, *end)
}

func TestParseDateRange_EmbeddedInHeaderLine(t *testing.T) {
	start, end, ok := ParseDateRange("Senior Engineer, Acme Corp | Jan 2020 – Present")
	require.True(t, ok)
	assert.Equal(t, 2020, start.Year)
	assert.Nil(t, end)
}

func TestParseDateRange_NoRange(t *testing.T) {
	_, _, ok := ParseDateRange("Built distributed systems")
	assert.False(t, ok)
}

func TestHasDateRange(t *testing.T) {
	assert.True(t, HasDateRange("Jun 2019 to Aug 2021"))
	assert.False(t, HasDateRange("no dates here"))
}
