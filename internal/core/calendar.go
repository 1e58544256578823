package core

import (
	"fmt"
	"time"
)

// MonthEndRisk describes whether the last calendar day of a month falls on a
// non-business day. Recurring fixed costs nominally due on the last day then
// post on an adjacent business day instead, which needs a manual offsetting
// entry. The tracker only warns; it never adjusts anything by itself.
type MonthEndRisk struct {
	Date            time.Time
	NeedsAdjustment bool
	Reason          string
	Holiday         string
}

// Korean public holidays by year and month-day, substitute days included.
// Lunar dates shift every year so the table is maintained per year; years
// outside it degrade to weekend-only classification.
var krHolidays = map[int]map[string]string{
	2024: {
		"01-01": "신정",
		"02-09": "설날 연휴", "02-10": "설날", "02-11": "설날 연휴", "02-12": "대체공휴일",
		"03-01": "삼일절",
		"04-10": "국회의원 선거일",
		"05-05": "어린이날", "05-06": "대체공휴일",
		"05-15": "부처님오신날",
		"06-06": "현충일",
		"08-15": "광복절",
		"09-16": "추석 연휴", "09-17": "추석", "09-18": "추석 연휴",
		"10-03": "개천절",
		"10-09": "한글날",
		"12-25": "성탄절",
	},
	2025: {
		"01-01": "신정",
		"01-28": "설날 연휴", "01-29": "설날", "01-30": "설날 연휴",
		"03-01": "삼일절", "03-03": "대체공휴일",
		"05-05": "어린이날", "05-06": "대체공휴일",
		"06-06": "현충일",
		"08-15": "광복절",
		"10-03": "개천절",
		"10-05": "추석 연휴", "10-06": "추석", "10-07": "추석 연휴", "10-08": "대체공휴일",
		"10-09": "한글날",
		"12-25": "성탄절",
	},
	2026: {
		"01-01": "신정",
		"02-16": "설날 연휴", "02-17": "설날", "02-18": "설날 연휴",
		"03-01": "삼일절", "03-02": "대체공휴일",
		"05-05": "어린이날",
		"05-24": "부처님오신날", "05-25": "대체공휴일",
		"06-06": "현충일",
		"08-15": "광복절", "08-17": "대체공휴일",
		"09-24": "추석 연휴", "09-25": "추석", "09-26": "추석 연휴",
		"10-03": "개천절", "10-05": "대체공휴일",
		"10-09": "한글날",
		"12-25": "성탄절",
	},
	2027: {
		"01-01": "신정",
		"02-06": "설날 연휴", "02-07": "설날", "02-08": "설날 연휴", "02-09": "대체공휴일",
		"03-01": "삼일절",
		"05-05": "어린이날",
		"05-13": "부처님오신날",
		"06-06": "현충일",
		"08-15": "광복절", "08-16": "대체공휴일",
		"09-14": "추석 연휴", "09-15": "추석", "09-16": "추석 연휴",
		"10-03": "개천절", "10-04": "대체공휴일",
		"10-09": "한글날", "10-11": "대체공휴일",
		"12-25": "성탄절", "12-27": "대체공휴일",
	},
}

// HolidayName reports whether the date is a Korean public holiday.
func HolidayName(t time.Time) (string, bool) {
	name, ok := krHolidays[t.Year()][t.Format("01-02")]
	return name, ok
}

// LastDayOfMonth returns the last calendar day of a YYYY-MM month.
func LastDayOfMonth(month string) (time.Time, error) {
	first, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, month)
	}
	return first.AddDate(0, 1, -1), nil
}

// AssessMonthEnd classifies the last calendar day of the month as a business
// day, a weekend day, or a public holiday.
func AssessMonthEnd(month string) (MonthEndRisk, error) {
	end, err := LastDayOfMonth(month)
	if err != nil {
		return MonthEndRisk{}, err
	}
	if name, ok := HolidayName(end); ok {
		return MonthEndRisk{
			Date:            end,
			NeedsAdjustment: true,
			Reason:          fmt.Sprintf("%s은 공휴일(%s)입니다", end.Format("2006-01-02"), name),
			Holiday:         name,
		}, nil
	}
	switch end.Weekday() {
	case time.Saturday, time.Sunday:
		return MonthEndRisk{
			Date:            end,
			NeedsAdjustment: true,
			Reason:          fmt.Sprintf("%s은 주말(%s)입니다", end.Format("2006-01-02"), koreanWeekday(end.Weekday())),
		}, nil
	}
	return MonthEndRisk{Date: end, Reason: "영업일"}, nil
}

func koreanWeekday(d time.Weekday) string {
	switch d {
	case time.Saturday:
		return "토요일"
	case time.Sunday:
		return "일요일"
	}
	return d.String()
}
