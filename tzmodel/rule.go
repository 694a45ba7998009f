// Package tzmodel holds the runtime model of a compiled zone: the daylight
// saving rule patterns that describe the open-ended future, the zonal
// transitions that describe the past, and the validated transition history
// combining both.
package tzmodel

import (
	"time"

	"github.com/MenoData/TZTool/internal/gregorian"
	"github.com/MenoData/TZTool/internal/unixtime"
	"github.com/MenoData/TZTool/tzdata"
)

// DaylightSavingRule is a recurring daylight saving pattern: a month, a
// symbolic day specifier, a time of day with its indicator, and the saving
// offset that takes effect. It can be realised to a concrete instant for
// any given year.
type DaylightSavingRule struct {
	Month     time.Month
	Day       tzdata.Day
	TimeOfDay int // seconds relative to 00:00, may be negative or > 24h
	Indicator tzdata.Indicator
	Saving    int // seconds added to standard time
}

// Date realises the rule's calendar date for the given year. The result can
// spill into a neighboring month or year for the on-or-after and
// on-or-before day forms.
func (r DaylightSavingRule) Date(year int) (y int, m time.Month, d int) {
	return gregorian.DayOfMonth(year, r.Month, r.Day)
}

// PosixTime returns the instant the rule fires in the given year, where
// shift is the number of seconds the rule's local reference frame is ahead
// of universal time.
func (r DaylightSavingRule) PosixTime(year int, shift int) int64 {
	y, m, d := r.Date(year)
	return unixtime.FromDate(y, int(m), d) + int64(r.TimeOfDay) - int64(shift)
}

// prototypeYear is a fixed leap year used to give rules of one family a
// stable in-year ordering independent of any zone offset.
const prototypeYear = 2000

// PrototypeTime returns the rule's firing instant in the prototype year
// with a zero shift. Rule families are kept sorted by this value.
func (r DaylightSavingRule) PrototypeTime() int64 {
	return r.PosixTime(prototypeYear, 0)
}
