package tzdata

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParse_ExtendedExample(t *testing.T) {
	var input = strings.TrimSpace(`
# Rule  NAME  FROM  TO    -  IN   ON       AT    SAVE  LETTER/S
Rule    Swiss 1941  1942  -  May  Mon>=1   1:00  1:00  S
Rule    Swiss 1941  1942  -  Oct  Mon>=1   2:00  0     -
Rule    EU    1977  1980  -  Apr  Sun>=1   1:00u 1:00  S
Rule    EU    1977  only  -  Sep  lastSun  1:00u 0     -
Rule    EU    1978  only  -  Oct   1       1:00u 0     -
Rule    EU    1979  1995  -  Sep  lastSun  1:00u 0     -
Rule    EU    1981  max   -  Mar  lastSun  1:00u 1:00  S
Rule    EU    1996  max   -  Oct  lastSun  1:00u 0     -

# Zone  NAME           STDOFF      RULES  FORMAT  [UNTIL]
Zone    Europe/Zurich  0:34:08     -      LMT     1853 Jul 16
						0:29:45.50  -      BMT     1894 Jun
						1:00        Swiss  CE%sT   1981
						1:00        EU     CE%sT

Link    Europe/Zurich  Europe/Vaduz
`)

	got, err := Parse("europe", strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	want := File{
		RuleLines: []RuleLine{
			{Name: "Swiss", From: 1941, To: 1942, In: time.May, On: NewDayAfter(1, time.Monday), At: NewWallClock(3600), Save: 3600, Letter: "S"},
			{Name: "Swiss", From: 1941, To: 1942, In: time.October, On: NewDayAfter(1, time.Monday), At: NewWallClock(7200), Save: 0, Letter: ""},
			{Name: "EU", From: 1977, To: 1980, In: time.April, On: NewDayAfter(1, time.Sunday), At: Clock{3600, Universal}, Save: 3600, Letter: "S"},
			{Name: "EU", From: 1977, To: 1977, In: time.September, On: NewDayLast(time.Sunday), At: Clock{3600, Universal}, Save: 0, Letter: ""},
			{Name: "EU", From: 1978, To: 1978, In: time.October, On: NewDayNum(1), At: Clock{3600, Universal}, Save: 0, Letter: ""},
			{Name: "EU", From: 1979, To: 1995, In: time.September, On: NewDayLast(time.Sunday), At: Clock{3600, Universal}, Save: 0, Letter: ""},
			{Name: "EU", From: 1981, To: MaxYear, In: time.March, On: NewDayLast(time.Sunday), At: Clock{3600, Universal}, Save: 3600, Letter: "S"},
			{Name: "EU", From: 1996, To: MaxYear, In: time.October, On: NewDayLast(time.Sunday), At: Clock{3600, Universal}, Save: 0, Letter: ""},
		},
		ZoneLines: []ZoneLine{
			{Name: "Europe/Zurich", Offset: 34*60 + 8, Rules: ZoneRules{Form: RulesNone}, Format: "LMT",
				Until: Until{Defined: true, Year: 1853, Month: time.July, Day: NewDayNum(16), Time: NewWallClock(0)}},
			{Continuation: true, Offset: 29*60 + 45, Rules: ZoneRules{Form: RulesNone}, Format: "BMT",
				Until: Until{Defined: true, Year: 1894, Month: time.June, Day: NewDayNum(1), Time: NewWallClock(0)}},
			{Continuation: true, Offset: 3600, Rules: ZoneRules{Form: RulesName, Name: "Swiss"}, Format: "CE%sT",
				Until: Until{Defined: true, Year: 1981, Month: time.January, Day: NewDayNum(1), Time: NewWallClock(0)}},
			{Continuation: true, Offset: 3600, Rules: ZoneRules{Form: RulesName, Name: "EU"}, Format: "CE%sT"},
		},
		LinkLines: []LinkLine{
			{Alias: "Europe/Vaduz", Target: "Europe/Zurich"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_SkipsRuleWithType(t *testing.T) {
	input := "Rule Chaos 1980 1990 odd Apr Sun>=1 2:00 1:00 D"
	got, err := Parse("test", strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(got.RuleLines) != 0 {
		t.Errorf("expected no rule lines, got %d", len(got.RuleLines))
	}
	if len(got.SkippedRules) != 1 {
		t.Fatalf("expected 1 skipped rule, got %d", len(got.SkippedRules))
	}
}

func TestParse_Leap(t *testing.T) {
	got, err := Parse("leapseconds", strings.NewReader("Leap\t1972\tJun\t30\t23:59:60\t+\tS"))
	if err != nil {
		t.Fatal(err)
	}
	want := []LeapLine{{Year: 1972, Month: time.June, Day: 30, Shift: 1}}
	if diff := cmp.Diff(want, got.LeapLines); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_LeapRejected(t *testing.T) {
	cases := []string{
		"Leap 1972 Jun 30 23:59:60 - S", // wrong time for skipped second
		"Leap 1972 Jun 30 23:59:59 + S", // wrong time for inserted second
		"Leap 1972 Jun 30 23:59:58 + S", // wrong time for inserted second
		"Leap 1972 Jun 30 23:59:60 + R", // rolling leap seconds unsupported
		"Leap 1972 Jun 30 23:59:60 * S", // unknown correction
	}
	for _, input := range cases {
		if _, err := Parse("leapseconds", strings.NewReader(input)); err == nil {
			t.Errorf("Parse(%q): expected error", input)
		}
	}
}

func TestParse_Expires(t *testing.T) {
	got, err := Parse("leapseconds", strings.NewReader("Expires 2025 Jun 28 00:00:00"))
	if err != nil {
		t.Fatal(err)
	}
	if !got.HasExpiry {
		t.Fatal("expected expiry")
	}
	want := Date{Year: 2025, Month: time.June, Day: 28}
	if diff := cmp.Diff(want, got.Expiry); diff != "" {
		t.Errorf("expiry mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_UndefinedRawOffset(t *testing.T) {
	if _, err := Parse("test", strings.NewReader("Zone Bad/Zone - - X")); err == nil {
		t.Error("expected error for undefined raw offset")
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want Clock
	}{
		{"-", Clock{0, Wall}},
		{"2", Clock{2 * 3600, Wall}},
		{"2:00", Clock{2 * 3600, Wall}},
		{"01:28:14", Clock{3600 + 28*60 + 14, Wall}},
		{"00:19:32.13", Clock{19*60 + 32, Wall}},
		{"24:00", Clock{24 * 3600, Wall}},
		{"260:00", Clock{260 * 3600, Wall}},
		{"-2:30", Clock{-(2*3600 + 30*60), Wall}},
		{"1:00u", Clock{3600, Universal}},
		{"1:00g", Clock{3600, Universal}},
		{"1:00z", Clock{3600, Universal}},
		{"1:00U", Clock{3600, Universal}},
		{"1:00s", Clock{3600, Standard}},
		{"1:00S", Clock{3600, Standard}},
		{"1:00w", Clock{3600, Wall}},
		{"+1:00", Clock{3600, Wall}},
	}
	for _, c := range cases {
		got, err := parseClock(c.in)
		if err != nil {
			t.Fatalf("parseClock(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("parseClock(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseDaySpec(t *testing.T) {
	cases := []struct {
		in   string
		want Day
	}{
		{"5", NewDayNum(5)},
		{"lastSun", NewDayLast(time.Sunday)},
		{"lastMonday", NewDayLast(time.Monday)},
		{"Sun>=8", NewDayAfter(8, time.Sunday)},
		{"Sun<=25", NewDayBefore(25, time.Sunday)},
		{"Fri>=1", NewDayAfter(1, time.Friday)},
	}
	for _, c := range cases {
		got, err := parseDaySpec(c.in)
		if err != nil {
			t.Fatalf("parseDaySpec(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("parseDaySpec(%q) = %v, want %v", c.in, got, c.want)
		}
	}

	for _, in := range []string{"", "Sun>8", "Sun<8", "first", "last", "<=5"} {
		if _, err := parseDaySpec(in); err == nil {
			t.Errorf("parseDaySpec(%q): expected error", in)
		}
	}
}

func TestParseMonth(t *testing.T) {
	cases := map[string]time.Month{
		"Jan":      time.January,
		"jan":      time.January,
		"January":  time.January,
		"Ja":       time.January,
		"May":      time.May,
		"Sept":     time.September,
		"DECEMBER": time.December,
	}
	for in, want := range cases {
		got, err := parseMonth(in)
		if err != nil {
			t.Fatalf("parseMonth(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("parseMonth(%q) = %v, want %v", in, got, want)
		}
	}

	for _, in := range []string{"", "Ju", "M", "Foo"} {
		if _, err := parseMonth(in); err == nil {
			t.Errorf("parseMonth(%q): expected error", in)
		}
	}
}

func TestParseWeekday(t *testing.T) {
	cases := map[string]time.Weekday{
		"Sun":      time.Sunday,
		"Su":       time.Sunday,
		"sunday":   time.Sunday,
		"M":        time.Monday,
		"Tu":       time.Tuesday,
		"Th":       time.Thursday,
		"SATURDAY": time.Saturday,
	}
	for in, want := range cases {
		got, err := parseWeekday(in)
		if err != nil {
			t.Fatalf("parseWeekday(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("parseWeekday(%q) = %v, want %v", in, got, want)
		}
	}

	for _, in := range []string{"", "S", "T", "Xyz"} {
		if _, err := parseWeekday(in); err == nil {
			t.Errorf("parseWeekday(%q): expected error", in)
		}
	}
}

func TestParseOffset(t *testing.T) {
	cases := map[string]int{
		"-":        0,
		"0":        0,
		"1":        3600,
		"1:00":     3600,
		"-5:50:36": -(5*3600 + 50*60 + 36),
		"0:34:08":  34*60 + 8,
	}
	for in, want := range cases {
		got, err := parseOffset(in)
		if err != nil {
			t.Fatalf("parseOffset(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("parseOffset(%q) = %d, want %d", in, got, want)
		}
	}

	if _, err := parseOffset("1:-30"); err == nil {
		t.Error("parseOffset(1:-30): expected error")
	}
}
