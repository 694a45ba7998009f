// Package tzdata parses the source files of the IANA time zone database
// as distributed in tzdata<version>.tar.gz at https://www.iana.org/time-zones.
package tzdata

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/MenoData/TZTool/internal/unixtime"
)

// LeapSecondsList is the name of the NIST leap second file shipped with the
// tz database. It is the only file whose "#@" hash line carries the expiry
// date of the leap second table.
const LeapSecondsList = "leap-seconds.list"

// File represents the result of parsing one tz source file.
// It contains the parsed rule, zone, link and leap lines in the order they
// appear. Zone continuation lines follow their opening zone line and are
// marked with Continuation. Rule lines whose TYPE column is not "-" are not
// parsed; their cleaned fields, joined by spaces, are collected in
// SkippedRules so callers can report them.
type File struct {
	RuleLines []RuleLine
	ZoneLines []ZoneLine
	LinkLines []LinkLine
	LeapLines []LeapLine

	// Expiry is the expiry date of the leap second table, taken from the
	// "#@" hash line of leap-seconds.list or from an Expires line.
	Expiry       Date
	HasExpiry    bool
	SkippedRules []string
}

// parseError is an error that occurred while parsing a source file.
// It carries the file name, line number and raw line.
type parseError struct {
	file       string
	lineNumber int
	line       string
	err        error
}

func (e *parseError) Error() string {
	return fmt.Sprintf("%s:%d: %q: %v", e.file, e.lineNumber, e.line, e.err)
}

func (e *parseError) Unwrap() error { return e.err }

// Parse parses the content of the named tz source file.
//
// Lines of no recognized shape outside of an open zone block are ignored:
// the corpus mixes tabular payloads (the NTP rows of leap-seconds.list)
// with tz syntax, and zic itself only reacts to the keywords it knows.
func Parse(filename string, r io.Reader) (File, error) {
	var (
		result File
		exp    *expiryScanner
	)
	if filename == LeapSecondsList {
		exp = &expiryScanner{}
	}

	scanner := bufio.NewScanner(r)
	var (
		lineNumber int
		zoneOpen   bool
	)
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		fields, err := cleanLine(line, exp)
		if err != nil {
			return result, &parseError{filename, lineNumber, line, err}
		}
		if fields == nil {
			continue // blank after comment stripping
		}

		fail := func(context string, err error) error {
			return &parseError{filename, lineNumber, line, fmt.Errorf("%s: %w", context, err)}
		}

		switch {
		case fields[0] == "Rule":
			if len(fields) > 4 && fields[4] != "-" {
				// TYPE column in use; such rules are obsolete and skipped.
				result.SkippedRules = append(result.SkippedRules, strings.Join(fields, " "))
				continue
			}
			rule, err := parseRuleLine(fields)
			if err != nil {
				return result, fail("parse rule", err)
			}
			result.RuleLines = append(result.RuleLines, rule)
		case fields[0] == "Zone":
			zone, err := parseZoneLine(fields)
			if err != nil {
				return result, fail("parse zone", err)
			}
			result.ZoneLines = append(result.ZoneLines, zone)
			zoneOpen = zone.Until.Defined
		case fields[0] == "Link":
			link, err := parseLinkLine(fields)
			if err != nil {
				return result, fail("parse link", err)
			}
			result.LinkLines = append(result.LinkLines, link)
		case fields[0] == "Leap":
			leap, err := parseLeapLine(fields)
			if err != nil {
				return result, fail("parse leap", err)
			}
			result.LeapLines = append(result.LeapLines, leap)
		case fields[0] == "Expires":
			date, err := parseExpiresLine(fields)
			if err != nil {
				return result, fail("parse expires", err)
			}
			result.Expiry = date
			result.HasExpiry = true
		case zoneOpen:
			zone, err := parseZoneContinuationLine(fields)
			if err != nil {
				return result, fail("parse zone continuation", err)
			}
			result.ZoneLines = append(result.ZoneLines, zone)
			zoneOpen = zone.Until.Defined
		}
	}
	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("scanner: %w", err)
	}

	if exp != nil && exp.found {
		result.Expiry = exp.date
		result.HasExpiry = true
	}
	return result, nil
}

// Date is a proleptic Gregorian calendar date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func dateOfUnix(unix int64) Date {
	y, m, d := unixtime.DateOf(unix)
	return Date{Year: y, Month: time.Month(m), Day: d}
}

// Year represents a year in the proleptic Gregorian calendar.
type Year int

const (
	// MinYear means the indefinite past.
	MinYear Year = math.MinInt
	// MaxYear means the indefinite future.
	MaxYear Year = math.MaxInt
)

func (y Year) String() string {
	if y == MinYear {
		return "<indefinite past>"
	}
	if y == MaxYear {
		return "<indefinite future>"
	}
	return strconv.Itoa(int(y))
}

// Indicator tells how a time-of-day field is to be interpreted when
// converting it to a Unix timestamp.
type Indicator int

const (
	// Wall means local wall clock time, daylight saving included.
	Wall Indicator = iota
	// Standard means local standard time without daylight saving.
	Standard
	// Universal means universal time.
	Universal
)

func (i Indicator) String() string {
	switch i {
	case Wall:
		return "Wall"
	case Standard:
		return "Standard"
	case Universal:
		return "Universal"
	default:
		return "<UNDEFINED>"
	}
}

// Clock is a time of day relative to 00:00, the start of a calendar day,
// together with the indicator of its reference frame. The seconds value may
// be negative or exceed 24 hours.
type Clock struct {
	Seconds   int
	Indicator Indicator
}

// NewWallClock returns a wall clock time of day.
func NewWallClock(seconds int) Clock {
	return Clock{Seconds: seconds, Indicator: Wall}
}

// DayForm discriminates the variants of a Day specifier.
type DayForm int

const (
	// DayNum is a literal day of the month.
	DayNum DayForm = iota
	// DayLast is the last given weekday of the month.
	DayLast
	// DayAfter is the first given weekday on or after a day of the month.
	DayAfter
	// DayBefore is the last given weekday on or before a day of the month.
	DayBefore
)

func (f DayForm) String() string {
	switch f {
	case DayNum:
		return "DayNum"
	case DayLast:
		return "Last"
	case DayAfter:
		return "After"
	case DayBefore:
		return "Before"
	default:
		return "<UNDEFINED>"
	}
}

// Day is the symbolic day specifier of a rule's ON field or of a zone
// line's UNTIL day. Depending on Form it combines a day of the month with
// a weekday. It stays symbolic until realised against a concrete year and
// month.
type Day struct {
	Form    DayForm
	Num     int
	Weekday time.Weekday
}

// NewDayNum returns a fixed day of the month.
func NewDayNum(num int) Day { return Day{Form: DayNum, Num: num} }

// NewDayLast returns the last weekday of the month.
func NewDayLast(wd time.Weekday) Day { return Day{Form: DayLast, Weekday: wd} }

// NewDayAfter returns the first weekday on or after the given day.
func NewDayAfter(num int, wd time.Weekday) Day {
	return Day{Form: DayAfter, Num: num, Weekday: wd}
}

// NewDayBefore returns the last weekday on or before the given day.
func NewDayBefore(num int, wd time.Weekday) Day {
	return Day{Form: DayBefore, Num: num, Weekday: wd}
}

// RuleLine represents one line of a named daylight saving rule family.
type RuleLine struct {
	Name   string     // NAME field, shared across the family
	From   Year       // FROM field, first year the rule applies
	To     Year       // TO field, last year the rule applies
	In     time.Month // IN field
	On     Day        // ON field
	At     Clock      // AT field
	Save   int        // SAVE field, daylight saving offset in seconds
	Letter string     // LETTER/S field, "" if "-"
}

// ZoneRulesForm discriminates the RULES column of a zone line.
type ZoneRulesForm int

const (
	// RulesNone means standard time always applies (RULES column is "-").
	RulesNone ZoneRulesForm = iota
	// RulesName means the RULES column names a rule family.
	RulesName
	// RulesFixed means the RULES column is a fixed saving offset.
	RulesFixed
)

// ZoneRules represents the RULES column of a zone line.
type ZoneRules struct {
	Form ZoneRulesForm
	// Name is the rule family name if Form is RulesName.
	Name string
	// Save is the fixed daylight saving offset in seconds if Form is
	// RulesFixed.
	Save int
}

// Until represents the UNTIL column of a zone line. Trailing fields may be
// omitted in the source and default to the earliest possible value: January,
// day 1, 00:00 wall clock.
type Until struct {
	// Defined is false if the UNTIL column is absent, which closes the zone.
	Defined bool
	Year    int
	Month   time.Month
	Day     Day
	Time    Clock
}

// ZoneLine represents a zone line or one of its continuation lines; together
// they form the eras of a named zone.
type ZoneLine struct {
	Continuation bool
	Name         string    // NAME field; empty on continuation lines
	Offset       int       // STDOFF field in seconds, positive east of Greenwich
	Rules        ZoneRules // RULES field
	Format       string    // FORMAT field, e.g. "CE%sT" or "LMT"
	Until        Until     // UNTIL field
}

// LinkLine represents a link line, i.e. an alias for a zone.
//
// Note the inversion: the file layout is "Link TARGET LINK-NAME", the
// parsed record is keyed by the alias.
type LinkLine struct {
	Alias  string
	Target string
}

// LeapLine represents a leap second insertion or deletion.
type LeapLine struct {
	Year  int
	Month time.Month
	Day   int
	// Shift is +1 for an inserted and -1 for a skipped second.
	Shift int8
}

func parseRuleLine(fields []string) (RuleLine, error) {
	if len(fields) != 10 {
		return RuleLine{}, fmt.Errorf("expected 10 fields, got %d", len(fields))
	}
	var (
		r    RuleLine
		errs error
		err  error
	)
	r.Name = fields[1]
	if r.From, err = parseRuleFROM(fields[2]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("FROM %q: %w", fields[2], err))
	}
	if r.To, err = parseRuleTO(fields[3], r.From); err != nil {
		errs = errors.Join(errs, fmt.Errorf("TO %q: %w", fields[3], err))
	}
	if r.In, err = parseMonth(fields[5]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("IN %q: %w", fields[5], err))
	}
	if r.On, err = parseDaySpec(fields[6]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("ON %q: %w", fields[6], err))
	}
	if r.At, err = parseClock(fields[7]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("AT %q: %w", fields[7], err))
	}
	if r.Save, err = parseSave(fields[8]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("SAVE %q: %w", fields[8], err))
	}
	if r.Letter = fields[9]; r.Letter == "-" {
		r.Letter = ""
	}
	return r, errs
}

// parseRuleFROM parses the FROM column of a rule.
//
// The spec says:
//
//	Gives the first year in which the rule applies.  Any
//	signed integer year can be supplied; the proleptic
//	Gregorian calendar is assumed, with year 0 preceding year
//	1.  The word minimum (or an abbreviation) means the
//	indefinite past.  The word maximum (or an abbreviation)
//	means the indefinite future.
func parseRuleFROM(s string) (Year, error) {
	if isAbbrev(s, "minimum", "mi") {
		return MinYear, nil
	}
	if isAbbrev(s, "maximum", "ma") {
		return MaxYear, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return Year(n), nil
}

// parseRuleTO parses the TO column of a rule.
//
// The spec says:
//
//	Gives the final year in which the rule applies.  In
//	addition to minimum and maximum (as above), the word only
//	(or an abbreviation) may be used to repeat the value of
//	the FROM field.
func parseRuleTO(s string, from Year) (Year, error) {
	if isAbbrev(s, "only", "o") {
		return from, nil
	}
	return parseRuleFROM(s)
}

func parseZoneLine(fields []string) (ZoneLine, error) {
	if len(fields) < 5 {
		return ZoneLine{}, fmt.Errorf("expected at least 5 fields, got %d", len(fields))
	}
	if len(fields) > 9 {
		return ZoneLine{}, fmt.Errorf("expected at most 9 fields, got %d", len(fields))
	}
	z, err := parseZoneBody(fields[2:])
	z.Name = fields[1]
	if z.Name == "" {
		err = errors.Join(err, fmt.Errorf("empty zone name"))
	}
	return z, err
}

// parseZoneContinuationLine parses a zone continuation line.
//
// The spec says:
//
//	[It] has the same form as a zone line except that the string
//	“Zone” and the name are omitted, as the continuation line will
//	place information starting at the time specified as the “until”
//	information in the previous line in the file used by the
//	previous line.
func parseZoneContinuationLine(fields []string) (ZoneLine, error) {
	if len(fields) < 3 {
		return ZoneLine{}, fmt.Errorf("expected at least 3 fields, got %d", len(fields))
	}
	if len(fields) > 7 {
		return ZoneLine{}, fmt.Errorf("expected at most 7 fields, got %d", len(fields))
	}
	z, err := parseZoneBody(fields)
	z.Continuation = true
	return z, err
}

// parseZoneBody parses the common tail of zone and continuation lines:
// GMTOFF RULES FORMAT [UNTIL...].
func parseZoneBody(fields []string) (ZoneLine, error) {
	var (
		z    ZoneLine
		errs error
		err  error
	)
	if fields[0] == "-" {
		// A zone era must define its standard offset.
		errs = errors.Join(errs, fmt.Errorf("STDOFF: undefined raw offset"))
	} else if z.Offset, err = parseOffset(fields[0]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("STDOFF %q: %w", fields[0], err))
	}
	if z.Rules, err = parseZoneRULES(fields[1]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("RULES %q: %w", fields[1], err))
	}
	z.Format = fields[2]
	if len(fields) > 3 {
		if z.Until, err = parseUntil(fields[3:]); err != nil {
			errs = errors.Join(errs, fmt.Errorf("UNTIL %q: %w", strings.Join(fields[3:], " "), err))
		}
	}
	return z, errs
}

// parseZoneRULES parses the RULES column of a zone line.
//
// The spec says:
//
//	The name of the rules that apply in the timezone or,
//	alternatively, a field in the same format as a rule-line
//	SAVE column, giving the amount of time to be added to
//	local standard time.  If this field is - then standard
//	time always applies.
func parseZoneRULES(s string) (ZoneRules, error) {
	if s == "-" {
		return ZoneRules{Form: RulesNone}, nil
	}
	if c := s[0]; (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') {
		return ZoneRules{Form: RulesName, Name: s}, nil
	}
	save, err := parseSave(s)
	if err != nil {
		return ZoneRules{}, err
	}
	return ZoneRules{Form: RulesFixed, Save: save}, nil
}

// parseUntil parses the up to four UNTIL fields of a zone line:
// YEAR [MONTH [DAY [TIME]]]. Omitted trailing fields default to the
// earliest possible value.
func parseUntil(fields []string) (Until, error) {
	if len(fields) > 4 {
		return Until{}, fmt.Errorf("too many fields: %d", len(fields))
	}
	u := Until{
		Defined: true,
		Month:   time.January,
		Day:     NewDayNum(1),
		Time:    NewWallClock(0),
	}
	var err error
	if u.Year, err = strconv.Atoi(fields[0]); err != nil {
		return u, fmt.Errorf("year: %w", err)
	}
	if len(fields) > 1 {
		if u.Month, err = parseMonth(fields[1]); err != nil {
			return u, fmt.Errorf("month: %w", err)
		}
	}
	if len(fields) > 2 {
		if u.Day, err = parseDaySpec(fields[2]); err != nil {
			return u, fmt.Errorf("day: %w", err)
		}
	}
	if len(fields) > 3 {
		if u.Time, err = parseClock(fields[3]); err != nil {
			return u, fmt.Errorf("time: %w", err)
		}
	}
	return u, nil
}

func parseLinkLine(fields []string) (LinkLine, error) {
	if len(fields) != 3 {
		return LinkLine{}, fmt.Errorf("expected 3 fields, got %d", len(fields))
	}
	return LinkLine{Alias: fields[2], Target: fields[1]}, nil
}

// parseLeapLine parses a leap line:
//
//	Leap  YEAR  MONTH  DAY  HH:MM:SS  +|-  Rolling|Stationary
//
// Only stationary leap seconds are supported; the time of day must match
// the correction sign (a second is inserted at 23:59:60 and skipped at
// 23:59:58).
func parseLeapLine(fields []string) (LeapLine, error) {
	if len(fields) != 7 {
		return LeapLine{}, fmt.Errorf("expected 7 fields, got %d", len(fields))
	}
	var (
		l   LeapLine
		err error
	)
	if l.Year, err = strconv.Atoi(fields[1]); err != nil {
		return l, fmt.Errorf("YEAR %q: %w", fields[1], err)
	}
	if l.Month, err = parseMonth(fields[2]); err != nil {
		return l, fmt.Errorf("MONTH %q: %w", fields[2], err)
	}
	if l.Day, err = strconv.Atoi(fields[3]); err != nil {
		return l, fmt.Errorf("DAY %q: %w", fields[3], err)
	}
	switch fields[5] {
	case "+":
		l.Shift = 1
		if fields[4] != "23:59:60" {
			return l, fmt.Errorf("unexpected time %q for inserted leap second", fields[4])
		}
	case "-":
		l.Shift = -1
		if fields[4] != "23:59:58" {
			return l, fmt.Errorf("unexpected time %q for skipped leap second", fields[4])
		}
	default:
		return l, fmt.Errorf("unexpected correction %q", fields[5])
	}
	if fields[6] == "" || !strings.HasPrefix("STATIONARY", strings.ToUpper(fields[6])) {
		return l, fmt.Errorf("leap line not stationary: %q", fields[6])
	}
	return l, nil
}

// parseExpiresLine parses an expires line of the leapseconds file:
//
//	Expires  YEAR  MONTH  DAY  HH:MM:SS
func parseExpiresLine(fields []string) (Date, error) {
	if len(fields) != 5 {
		return Date{}, fmt.Errorf("expected 5 fields, got %d", len(fields))
	}
	var (
		d   Date
		err error
	)
	if d.Year, err = strconv.Atoi(fields[1]); err != nil {
		return d, fmt.Errorf("YEAR %q: %w", fields[1], err)
	}
	if d.Month, err = parseMonth(fields[2]); err != nil {
		return d, fmt.Errorf("MONTH %q: %w", fields[2], err)
	}
	if d.Day, err = strconv.Atoi(fields[3]); err != nil {
		return d, fmt.Errorf("DAY %q: %w", fields[3], err)
	}
	return d, nil
}

// parseDaySpec parses the symbolic day specifier of a rule's ON field or a
// zone line's UNTIL day.
//
// The spec says:
//
//	Recognized forms include:
//
//	     5        the fifth of the month
//	     lastSun  the last Sunday in the month
//	     lastMon  the last Monday in the month
//	     Sun>=8   first Sunday on or after the eighth
//	     Sun<=25  last Sunday on or before the 25th
//
//	A weekday name (e.g., Sunday) or a weekday name preceded
//	by “last” (e.g., lastSunday) may be abbreviated or spelled
//	out in full.
func parseDaySpec(s string) (Day, error) {
	if s == "" {
		return Day{}, fmt.Errorf("empty day")
	}
	if n, err := strconv.Atoi(s); err == nil {
		return NewDayNum(n), nil
	}
	if strings.HasPrefix(s, "last") {
		wd, err := parseWeekday(s[4:])
		if err != nil {
			return Day{}, err
		}
		return NewDayLast(wd), nil
	}
	pos := strings.IndexAny(s, "<>")
	if pos == -1 {
		return Day{}, fmt.Errorf("invalid day specifier")
	}
	if pos+1 >= len(s) || s[pos+1] != '=' {
		return Day{}, fmt.Errorf("expected '=' after %q", s[pos:pos+1])
	}
	wd, err := parseWeekday(s[:pos])
	if err != nil {
		return Day{}, fmt.Errorf("weekday %q: %w", s[:pos], err)
	}
	n, err := strconv.Atoi(s[pos+2:])
	if err != nil {
		return Day{}, fmt.Errorf("day of month %q: %w", s[pos+2:], err)
	}
	if s[pos] == '>' {
		return NewDayAfter(n, wd), nil
	}
	return NewDayBefore(n, wd), nil
}

// parseClock parses a time of day with an optional indicator suffix.
//
// The spec says:
//
//	Recognized forms include:
//
//	     2            time in hours
//	     2:00         time in hours and minutes
//	     01:28:14     time in hours, minutes, and seconds
//	     00:19:32.13  time with fractional seconds
//	     24:00        end of day, 24 hours after 00:00
//	     260:00       260 hours after 00:00
//	     -2:30        2.5 hours before 00:00
//	     -            equivalent to 0
//
//	Any of these forms may be followed by the letter w if the
//	given time is local or “wall clock” time, s if the given
//	time is standard time without any adjustment for daylight
//	saving, or u (or g or z) if the given time is universal
//	time; in the absence of an indicator, local (wall clock)
//	time is assumed.
//
// Fractional seconds are truncated; zic rounds, but second precision is all
// the repository stores. Upper case suffix letters are tolerated.
func parseClock(s string) (Clock, error) {
	c := Clock{Indicator: Wall}
	if s == "-" {
		return c, nil
	}
	switch s[len(s)-1] {
	case 'u', 'U', 'g', 'G', 'z', 'Z':
		c.Indicator = Universal
		s = s[:len(s)-1]
	case 's', 'S':
		c.Indicator = Standard
		s = s[:len(s)-1]
	case 'w', 'W':
		s = s[:len(s)-1]
	}
	if s == "-" {
		return c, nil
	}
	seconds, err := parseHMS(s)
	if err != nil {
		return c, err
	}
	c.Seconds = seconds
	return c, nil
}

// parseSave parses a SAVE column: a time of day with an optional s or d
// suffix. Only the offset matters for the repository, the suffix is
// discarded.
func parseSave(s string) (int, error) {
	switch s[len(s)-1] {
	case 's', 'd':
		if len(s) > 1 {
			s = s[:len(s)-1]
		}
	}
	return parseOffset(s)
}

// parseOffset parses an offset column of the form [-]HH[:MM[:SS]] into
// seconds. A bare "-" is zero.
func parseOffset(s string) (int, error) {
	if s == "-" {
		return 0, nil
	}
	return parseHMS(s)
}

// parseHMS sums an [+-]HH[:MM[:SS[.frac]]] field to seconds. Fractional
// seconds are truncated.
func parseHMS(s string) (int, error) {
	negative := strings.HasPrefix(s, "-")
	if negative || strings.HasPrefix(s, "+") {
		s = s[1:]
	}

	parts := strings.SplitN(s, ":", 4)
	if len(parts) > 3 {
		return 0, fmt.Errorf("too many ':' separators")
	}
	var hms [3]int
	for i, part := range parts {
		if i == 2 {
			if dot := strings.IndexByte(part, '.'); dot != -1 {
				part = part[:dot] // truncate subsecond precision
			}
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return 0, err
		}
		if n < 0 {
			return 0, fmt.Errorf("unexpected sign in %q", part)
		}
		hms[i] = n
	}

	total := hms[0]*3600 + hms[1]*60 + hms[2]
	if negative {
		total = -total
	}
	return total, nil
}

var longMonths = [...]string{
	"JANUARY", "FEBRUARY", "MARCH", "APRIL", "MAY", "JUNE",
	"JULY", "AUGUST", "SEPTEMBER", "OCTOBER", "NOVEMBER", "DECEMBER",
}

var shortMonths = [...]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// parseMonth resolves a month name given as the 3-letter abbreviation or
// any unambiguous prefix of the full English name, case-insensitively.
func parseMonth(s string) (time.Month, error) {
	for i, short := range shortMonths {
		if strings.EqualFold(s, short) {
			return time.Month(i + 1), nil
		}
	}
	idx, err := matchPrefix(s, longMonths[:])
	if err != nil {
		return 0, fmt.Errorf("month %q: %w", s, err)
	}
	return time.Month(idx + 1), nil
}

var longDays = [...]string{
	"SUNDAY", "MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY",
}

var shortDays = [...]string{
	"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat",
}

// parseWeekday resolves a weekday name given as the 3-letter abbreviation
// or any unambiguous prefix of the full English name, case-insensitively.
func parseWeekday(s string) (time.Weekday, error) {
	for i, short := range shortDays {
		if strings.EqualFold(s, short) {
			return time.Weekday(i), nil
		}
	}
	idx, err := matchPrefix(s, longDays[:])
	if err != nil {
		return 0, fmt.Errorf("weekday %q: %w", s, err)
	}
	return time.Weekday(idx), nil
}

// matchPrefix finds the single candidate the upper-cased input is a prefix
// of. Ambiguous and unknown inputs are errors.
func matchPrefix(s string, candidates []string) (int, error) {
	if s == "" {
		return 0, errors.New("empty")
	}
	u := strings.ToUpper(s)
	found := -1
	for i, c := range candidates {
		if strings.HasPrefix(c, u) {
			if found != -1 {
				return 0, errors.New("ambiguous")
			}
			found = i
		}
	}
	if found == -1 {
		return 0, errors.New("invalid")
	}
	return found, nil
}

func isAbbrev(s string, long string, min string) bool {
	l := strings.ToLower(s)
	return strings.HasPrefix(l, min) && strings.HasPrefix(long, l)
}
