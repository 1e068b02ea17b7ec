package types

import "time"

// Period describes how far back a historical download reaches. The values
// mirror the enumerated set accepted by the remote chart API.
type Period string

const (
	PeriodOneDay     Period = "1d"
	PeriodFiveDays   Period = "5d"
	PeriodOneMonth   Period = "1mo"
	PeriodThreeMonth Period = "3mo"
	PeriodSixMonths  Period = "6mo"
	PeriodOneYear    Period = "1y"
	PeriodTwoYears   Period = "2y"
	PeriodFiveYears  Period = "5y"
	PeriodTenYears   Period = "10y"
	PeriodYearToDate Period = "ytd"
	PeriodMax        Period = "max"
)

// Interval describes the granularity of the bars within a period. The values
// mirror the enumerated set accepted by the remote chart API.
type Interval string

const (
	IntervalOneMinute      Interval = "1m"
	IntervalTwoMinutes     Interval = "2m"
	IntervalFiveMinutes    Interval = "5m"
	IntervalFifteenMinutes Interval = "15m"
	IntervalThirtyMinutes  Interval = "30m"
	IntervalSixtyMinutes   Interval = "60m"
	IntervalNinetyMinutes  Interval = "90m"
	IntervalOneHour        Interval = "1h"
	IntervalOneDay         Interval = "1d"
	IntervalFiveDays       Interval = "5d"
	IntervalOneWeek        Interval = "1wk"
	IntervalOneMonth       Interval = "1mo"
	IntervalThreeMonths    Interval = "3mo"
)

// Periods returns all valid period values.
func Periods() []Period {
	return []Period{
		PeriodOneDay, PeriodFiveDays, PeriodOneMonth, PeriodThreeMonth,
		PeriodSixMonths, PeriodOneYear, PeriodTwoYears, PeriodFiveYears,
		PeriodTenYears, PeriodYearToDate, PeriodMax,
	}
}

// Intervals returns all valid interval values.
func Intervals() []Interval {
	return []Interval{
		IntervalOneMinute, IntervalTwoMinutes, IntervalFiveMinutes,
		IntervalFifteenMinutes, IntervalThirtyMinutes, IntervalSixtyMinutes,
		IntervalNinetyMinutes, IntervalOneHour, IntervalOneDay,
		IntervalFiveDays, IntervalOneWeek, IntervalOneMonth, IntervalThreeMonths,
	}
}

// IsValid reports whether the period is one of the enumerated values.
func (p Period) IsValid() bool {
	for _, valid := range Periods() {
		if p == valid {
			return true
		}
	}

	return false
}

// IsValid reports whether the interval is one of the enumerated values.
func (i Interval) IsValid() bool {
	for _, valid := range Intervals() {
		if i == valid {
			return true
		}
	}

	return false
}

// Range converts the period into an absolute [start, end] time range ending at
// the given reference time. PeriodMax starts at the Unix epoch and
// PeriodYearToDate at January 1st of the reference year.
func (p Period) Range(now time.Time) (start time.Time, end time.Time) {
	end = now

	switch p {
	case PeriodOneDay:
		start = now.AddDate(0, 0, -1)
	case PeriodFiveDays:
		start = now.AddDate(0, 0, -5)
	case PeriodOneMonth:
		start = now.AddDate(0, -1, 0)
	case PeriodThreeMonth:
		start = now.AddDate(0, -3, 0)
	case PeriodSixMonths:
		start = now.AddDate(0, -6, 0)
	case PeriodOneYear:
		start = now.AddDate(-1, 0, 0)
	case PeriodTwoYears:
		start = now.AddDate(-2, 0, 0)
	case PeriodFiveYears:
		start = now.AddDate(-5, 0, 0)
	case PeriodTenYears:
		start = now.AddDate(-10, 0, 0)
	case PeriodYearToDate:
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	case PeriodMax:
		start = time.Unix(0, 0).In(now.Location())
	default:
		start = now.AddDate(-1, 0, 0)
	}

	return start, end
}
