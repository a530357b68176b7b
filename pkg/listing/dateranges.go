package listing

import "time"

// DateRange is one canned date-range preset offered on date-type filters.
// Value is a day offset (int) or a named calendar/comparison period (string).
type DateRange struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

var (
	DateYesterday    = DateRange{Name: "Yesterday", Value: -1}
	DateToday        = DateRange{Name: "Today", Value: 0}
	DateLastWeek     = DateRange{Name: "Last Week", Value: -7}
	DateLast30Days   = DateRange{Name: "Last 30 Days", Value: -30}
	DateLast180Days  = DateRange{Name: "Last 180 Days", Value: -180}
	DateLastYear     = DateRange{Name: "Last Year", Value: -365}
	DateLastTwoYears = DateRange{Name: "Last 2 Years", Value: -730}
	DateTomorrow     = DateRange{Name: "Tomorrow", Value: 1}
	DateNextWeek     = DateRange{Name: "Next Week", Value: 7}
	DateNext30Days   = DateRange{Name: "Next 30 Days", Value: 30}
	DateNext180Days  = DateRange{Name: "Next 180 Days", Value: 180}

	DateNextCalendarMonth       = DateRange{Name: "Next Month", Value: "+1 Calendar Month"}
	DateNext3CalendarMonths     = DateRange{Name: "Next 3 Months", Value: "+3 Calendar Month"}
	DatePreviousCalendarMonth   = DateRange{Name: "Previous Month", Value: "-1 Calendar Month"}
	DatePrevious3CalendarMonths = DateRange{Name: "Previous 3 Months", Value: "-3 Calendar Month"}

	// DateEmpty is the explicit "no date filtering" choice. Date filters that
	// do not offer it are implied filters: the compiler substitutes "now"
	// when no value was submitted.
	DateEmpty = DateRange{Name: "Clear", Value: nil}

	DatePreviousPeriod  = DateRange{Name: "Previous Period", Value: "Previous Period"}
	DatePrevious30Days  = DateRange{Name: "Previous 30 Days", Value: "Previous 30 Days"}
	DatePrevious180Days = DateRange{Name: "Previous 180 Days", Value: "Previous 180 Days"}
	DatePreviousYear    = DateRange{Name: "Previous Year", Value: "Previous Year"}
)

const dateFormat = "2006-01-02 15:04:05"

// BasicDateStartAndEnd is the default value for date filters: the last 30
// days up to the end of today.
func BasicDateStartAndEnd() []string {
	now := time.Now()
	return []string{
		midnight(now.AddDate(0, 0, -30)).Format(dateFormat),
		endOfDay(now).Format(dateFormat),
	}
}

// LastYearStartAndEnd covers the last 365 days up to the end of today.
func LastYearStartAndEnd() []string {
	now := time.Now()
	return []string{
		midnight(now.AddDate(0, 0, -365)).Format(dateFormat),
		endOfDay(now).Format(dateFormat),
	}
}

// ReverseBasicDateStartAndEnd covers today through the next 30 days.
func ReverseBasicDateStartAndEnd() []string {
	now := time.Now()
	return []string{
		midnight(now).Format(dateFormat),
		endOfDay(now.AddDate(0, 0, 30)).Format(dateFormat),
	}
}

func BasicDateRangesPastAndFuture() []DateRange {
	return []DateRange{
		DateLast180Days,
		DateLast30Days,
		DateLastWeek,
		DateYesterday,
		DateToday,
		DateTomorrow,
		DateNextWeek,
		DateNext30Days,
		DateNext180Days,
	}
}

func BasicDateRangesPastAndFutureCalendarMonths() []DateRange {
	return []DateRange{
		DatePrevious3CalendarMonths,
		DatePreviousCalendarMonth,
		DateLastWeek,
		DateYesterday,
		DateToday,
		DateTomorrow,
		DateNextWeek,
		DateNextCalendarMonth,
		DateNext3CalendarMonths,
	}
}

func BasicDateRangesPast() []DateRange {
	return []DateRange{
		DateToday,
		DateYesterday,
		DateLastWeek,
		DateLast30Days,
		DatePreviousCalendarMonth,
		DateLast180Days,
		DatePrevious3CalendarMonths,
	}
}

func FullDateRangesPast() []DateRange {
	return append(BasicDateRangesPast(), DateLastYear, DateLastTwoYears)
}

func BasicDateRangesFuture() []DateRange {
	return []DateRange{
		DateToday,
		DateTomorrow,
		DateNextWeek,
		DateNext30Days,
		DateNext180Days,
	}
}

func MonthRangesPast() []DateRange {
	return []DateRange{DatePreviousCalendarMonth, DatePrevious3CalendarMonths}
}

func MonthRangesFuture() []DateRange {
	return []DateRange{DateNextCalendarMonth, DateNext3CalendarMonths}
}

// ReportComparisonDateRangesPast returns the comparison presets used by
// report views; both groups are opt-in.
func ReportComparisonDateRangesPast(includeEmpty, includeComparisonDates bool) []DateRange {
	var dates []DateRange
	if includeComparisonDates {
		dates = append(dates, DatePreviousPeriod, DatePrevious30Days, DatePrevious180Days, DatePreviousYear)
	}
	if includeEmpty {
		dates = append(dates, DateEmpty)
	}
	return dates
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
