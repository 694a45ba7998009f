// Package gregorian provides proleptic Gregorian calendar arithmetic for
// realising the symbolic day specifiers of tz source lines.
package gregorian

import (
	"fmt"
	"time"

	"github.com/MenoData/TZTool/tzdata"
)

// IsLeapYear determines if the year is a leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in a given month for a specific year.
func DaysInMonth(year, month int) int {
	if month == 2 {
		if IsLeapYear(year) {
			return 29
		}
		return 28
	}
	if month == 4 || month == 6 || month == 9 || month == 11 {
		return 30
	}
	return 31
}

// DayOfWeek calculates the day of the week for a given date,
// where 0=Sunday, 1=Monday, ..., 6=Saturday.
func DayOfWeek(year, month, day int) int {
	// Zeller's Congruence adjusted for the Gregorian calendar.
	if month < 3 {
		month += 12
		year -= 1
	}
	k := year % 100
	j := year / 100
	h := (day + ((13 * (month + 1)) / 5) + k + (k / 4) + (j / 4) + (5 * j)) % 7
	// Adjust result to fit Sunday=0, Monday=1, ..., Saturday=6
	return (h + 6) % 7
}

// LastWeekdayOfMonth finds the last instance of a given weekday in a
// specific month and year.
func LastWeekdayOfMonth(year, month, weekday int) int {
	lastDay := DaysInMonth(year, month)
	lastDayWeekday := DayOfWeek(year, month, lastDay)

	offset := (lastDayWeekday - weekday + 7) % 7
	return lastDay - offset
}

// NextWeekday calculates the next occurrence of a weekday on or after a
// given day in the specified month and year, accounting for overflow into
// the next month or year.
func NextWeekday(year, month, day, targetWeekday int) (int, int, int) {
	dayOfWeek := DayOfWeek(year, month, day)
	diff := targetWeekday - dayOfWeek
	if diff < 0 {
		diff += 7
	}

	nextOccurrence := day + diff
	daysInCurrentMonth := DaysInMonth(year, month)

	if nextOccurrence > daysInCurrentMonth {
		nextOccurrence -= daysInCurrentMonth
		month += 1
		if month > 12 {
			month = 1
			year += 1
		}
	}

	return year, month, nextOccurrence
}

// PrevWeekday finds the last occurrence of a given weekday on or before a
// given day in the specified month and year, accounting for overflow into
// the previous month or year.
func PrevWeekday(year, month, day, targetWeekday int) (int, int, int) {
	dayOfWeek := DayOfWeek(year, month, day)
	diff := dayOfWeek - targetWeekday
	if diff < 0 {
		diff += 7
	}

	lastOccurrence := day - diff
	if lastOccurrence < 1 {
		month -= 1
		if month < 1 {
			month = 12
			year -= 1
		}
		lastOccurrence += DaysInMonth(year, month)
	}

	return year, month, lastOccurrence
}

// DayOfMonth realises a symbolic day specifier against a concrete year and
// month. The result may fall into a neighboring month or year for the
// on-or-after and on-or-before forms.
func DayOfMonth(year int, month time.Month, d tzdata.Day) (y int, m time.Month, day int) {
	switch d.Form {
	case tzdata.DayNum:
		return year, month, d.Num
	case tzdata.DayLast:
		num := LastWeekdayOfMonth(year, int(month), int(d.Weekday))
		return year, month, num
	case tzdata.DayAfter:
		y, m, day := NextWeekday(year, int(month), d.Num, int(d.Weekday))
		return y, time.Month(m), day
	case tzdata.DayBefore:
		y, m, day := PrevWeekday(year, int(month), d.Num, int(d.Weekday))
		return y, time.Month(m), day
	}
	panic(fmt.Errorf("invalid day form: %v", d.Form))
}
