package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type PeriodTestSuite struct {
	suite.Suite
}

func TestPeriodSuite(t *testing.T) {
	suite.Run(t, new(PeriodTestSuite))
}

func (suite *PeriodTestSuite) TestPeriodIsValid() {
	for _, p := range Periods() {
		suite.Run(string(p), func() {
			suite.True(p.IsValid())
		})
	}
}

func (suite *PeriodTestSuite) TestPeriodIsValidUnknown() {
	suite.False(Period("7y").IsValid())
	suite.False(Period("").IsValid())
}

func (suite *PeriodTestSuite) TestIntervalIsValid() {
	for _, i := range Intervals() {
		suite.Run(string(i), func() {
			suite.True(i.IsValid())
		})
	}
}

func (suite *PeriodTestSuite) TestIntervalIsValidUnknown() {
	suite.False(Interval("2h").IsValid())
	suite.False(Interval("").IsValid())
}

func (suite *PeriodTestSuite) TestRange() {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		period        Period
		expectedStart time.Time
	}{
		{PeriodOneDay, now.AddDate(0, 0, -1)},
		{PeriodFiveDays, now.AddDate(0, 0, -5)},
		{PeriodOneMonth, now.AddDate(0, -1, 0)},
		{PeriodThreeMonth, now.AddDate(0, -3, 0)},
		{PeriodSixMonths, now.AddDate(0, -6, 0)},
		{PeriodOneYear, now.AddDate(-1, 0, 0)},
		{PeriodTwoYears, now.AddDate(-2, 0, 0)},
		{PeriodFiveYears, now.AddDate(-5, 0, 0)},
		{PeriodTenYears, now.AddDate(-10, 0, 0)},
	}

	for _, tc := range tests {
		suite.Run(string(tc.period), func() {
			start, end := tc.period.Range(now)
			suite.Equal(tc.expectedStart, start)
			suite.Equal(now, end)
		})
	}
}

func (suite *PeriodTestSuite) TestRangeYearToDate() {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	start, end := PeriodYearToDate.Range(now)
	suite.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), start)
	suite.Equal(now, end)
}

func (suite *PeriodTestSuite) TestRangeMax() {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	start, _ := PeriodMax.Range(now)
	suite.Equal(int64(0), start.Unix())
}
