package tzc

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/MenoData/TZTool/tzdata"
	"github.com/MenoData/TZTool/tzmodel"
	"github.com/MenoData/TZTool/tzrepo"
)

// compileSource compiles a single synthetic "europe" file.
func compileSource(t *testing.T, src string, opts Options) *tzrepo.Repository {
	t.Helper()
	repo, err := Compile("2024a", map[string]string{"europe": strings.TrimSpace(src)}, opts)
	require.NoError(t, err)
	require.NoError(t, tzrepo.Validate(repo))
	return repo
}

// historyOf decodes the transition history of a zone from the repository.
func historyOf(t *testing.T, repo *tzrepo.Repository, id string) *tzmodel.TransitionHistory {
	t.Helper()
	for _, z := range repo.Zones {
		if z.ID == id {
			h, err := tzmodel.ReadHistory(bytes.NewReader(z.History))
			require.NoError(t, err)
			return h
		}
	}
	t.Fatalf("zone %s not found", id)
	return nil
}

func TestCompile_EmptyZone(t *testing.T) {
	repo := compileSource(t, `Zone Etc/UTC 0 - UTC`, Options{})

	h := historyOf(t, repo, "Etc/UTC")
	require.Equal(t, 0, h.InitialOffset)
	require.Empty(t, h.Transitions)
	require.Empty(t, h.Rules)
}

func TestCompile_FixedSavingContinuation(t *testing.T) {
	// The era boundary does not change the total offset, so no transition
	// is emitted.
	repo := compileSource(t, `
Zone X 1:00 - CET 1980 Jan 1 0:00u
     1:00 - CET
`, Options{})

	h := historyOf(t, repo, "X")
	require.Equal(t, 3600, h.InitialOffset)
	require.Empty(t, h.Transitions)
	require.Empty(t, h.Rules)
}

func TestCompile_RecurringRules(t *testing.T) {
	repo := compileSource(t, `
Rule R 1970 max - Mar lastSun 2:00 1:00 D
Rule R 1970 max - Oct lastSun 3:00 0 S
Zone X 1:00 R CE%sT
`, Options{})

	h := historyOf(t, repo, "X")
	require.Equal(t, 3600, h.InitialOffset)

	// Both rules survive as recurring patterns, sorted by in-year instant.
	require.Len(t, h.Rules, 2)
	require.Equal(t, 3600, h.Rules[0].Saving)
	require.Equal(t, 0, h.Rules[1].Saving)

	// The expansion window [startYear-1, endYear+1] materialises the first
	// two years; afterwards the recurring patterns take over.
	want := []tzmodel.ZonalTransition{
		{PosixTime: 7520400, PreviousOffset: 3600, TotalOffset: 7200, DaylightSaving: 3600},   // 1970-03-29 02:00 wall
		{PosixTime: 25664400, PreviousOffset: 7200, TotalOffset: 3600, DaylightSaving: 0},     // 1970-10-25 03:00 wall
		{PosixTime: 38970000, PreviousOffset: 3600, TotalOffset: 7200, DaylightSaving: 3600},  // 1971-03-28 02:00 wall
		{PosixTime: 57718800, PreviousOffset: 7200, TotalOffset: 3600, DaylightSaving: 0},     // 1971-10-31 03:00 wall
	}
	if diff := cmp.Diff(want, h.Transitions); diff != "" {
		t.Errorf("transitions mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_CoalescesSameInstant(t *testing.T) {
	// Two rules of one family firing at the identical universal instant
	// collapse into a single record that keeps the previous offset of the
	// first emission and the new offsets of the second.
	repo := compileSource(t, `
Rule C 1980 only - Apr 1 2:00u 0:30 -
Rule C 1980 only - Apr 1 2:00u 1:00 D
Rule C 1980 only - Oct 1 2:00u 0 S
Zone X 1:00 C CE%sT
`, Options{})

	h := historyOf(t, repo, "X")
	require.Equal(t, 3600, h.InitialOffset)
	require.Empty(t, h.Rules)

	want := []tzmodel.ZonalTransition{
		{PosixTime: 323402400, PreviousOffset: 3600, TotalOffset: 7200, DaylightSaving: 3600},
		{PosixTime: 339213600, PreviousOffset: 7200, TotalOffset: 3600, DaylightSaving: 0},
	}
	if diff := cmp.Diff(want, h.Transitions); diff != "" {
		t.Errorf("transitions mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_LinkChain(t *testing.T) {
	repo := compileSource(t, `
Zone C 0 - UTC
Link C B
Link B A
`, Options{})

	require.Len(t, repo.Zones, 1)
	require.Equal(t, "C", repo.Zones[0].ID)

	want := []tzrepo.Alias{
		{Name: "A", Index: 0},
		{Name: "B", Index: 0},
	}
	if diff := cmp.Diff(want, repo.Aliases); diff != "" {
		t.Errorf("aliases mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_UnknownLinkTarget(t *testing.T) {
	_, err := Compile("2024a", map[string]string{"europe": "Zone C 0 - UTC\nLink Missing A"}, Options{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "link target not found")
}

func TestCompile_UndefinedRuleName(t *testing.T) {
	_, err := Compile("2024a", map[string]string{"europe": "Zone X 1:00 Nope CE%sT"}, Options{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "undefined rule name")
}

func TestCompile_LeapSeconds(t *testing.T) {
	files := map[string]string{
		"europe":      "Zone Etc/UTC 0 - UTC",
		"leapseconds": "Leap 1972 Jun 30 23:59:60 + S",
	}
	repo, err := Compile("2024a", files, Options{})
	require.NoError(t, err)

	want := []tzrepo.Leap{{Year: 1972, Month: 6, Day: 30, Shift: 1}}
	if diff := cmp.Diff(want, repo.Leaps); diff != "" {
		t.Errorf("leaps mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_RejectsBadLeap(t *testing.T) {
	for _, leap := range []string{
		"Leap 1972 Jun 30 23:59:60 - S",
		"Leap 1972 Jun 30 23:59:59 + S",
		"Leap 1972 Jun 30 23:59:60 + Rolling",
	} {
		files := map[string]string{
			"europe":      "Zone Etc/UTC 0 - UTC",
			"leapseconds": leap,
		}
		_, err := Compile("2024a", files, Options{})
		require.Error(t, err, leap)
	}
}

func TestCompile_ExpiryStamp(t *testing.T) {
	files := map[string]string{
		"europe":           "Zone Etc/UTC 0 - UTC",
		"leap-seconds.list": "#@\t3928521600",
	}
	repo, err := Compile("2024a", files, Options{})
	require.NoError(t, err)
	require.Equal(t, tzrepo.Date{Year: 2024, Month: 6, Day: 28}, repo.Expiry)
}

func TestCompile_LMTElision(t *testing.T) {
	src := `
Zone X 0:20 - LMT 1900 Jan 1
     1:00 - CET
`
	// By default the leading LMT era is dropped and the initial offset is
	// re-seeded from the elided transition.
	repo := compileSource(t, src, Options{})
	h := historyOf(t, repo, "X")
	require.Equal(t, 3600, h.InitialOffset)
	require.Empty(t, h.Transitions)

	// Opting in keeps the local mean time era.
	repo = compileSource(t, src, Options{LMT: true})
	h = historyOf(t, repo, "X")
	require.Equal(t, 1200, h.InitialOffset)
	require.Len(t, h.Transitions, 1)
	require.Equal(t, 1200, h.Transitions[0].PreviousOffset)
	require.Equal(t, 3600, h.Transitions[0].TotalOffset)
	require.Equal(t, int64(-2208988800-1200), h.Transitions[0].PosixTime)
}

func TestCompile_ZonesSorted(t *testing.T) {
	repo := compileSource(t, `
Zone B/Two 0 - UTC
Zone A/One 0 - UTC
Zone C/Three 0 - UTC
`, Options{})

	var ids []string
	for _, z := range repo.Zones {
		ids = append(ids, z.ID)
	}
	require.Equal(t, []string{"A/One", "B/Two", "C/Three"}, ids)
}

func TestCompile_EraWithNamedRulesBeforeFixed(t *testing.T) {
	// A continuation era that leaves a rule family mid-flight: the boundary
	// transition uses the saving in effect at the cut.
	repo := compileSource(t, `
Rule R 1970 max - Mar lastSun 2:00 1:00 D
Rule R 1970 max - Oct lastSun 3:00 0 S
Zone X 1:00 R CE%sT 1971 Jan 1 0:00u
     2:00 - MSK
`, Options{})

	h := historyOf(t, repo, "X")
	require.Equal(t, 3600, h.InitialOffset)
	require.Empty(t, h.Rules) // the family only governs a finite era

	// 1970: two in-window transitions, then the boundary to the fixed era.
	require.Len(t, h.Transitions, 3)
	last := h.Transitions[2]
	require.Equal(t, int64(31536000), last.PosixTime) // 1971-01-01 00:00 UTC
	require.Equal(t, 3600, last.PreviousOffset)
	require.Equal(t, 7200, last.TotalOffset)
	require.Equal(t, 0, last.DaylightSaving)
}

func TestRuleOffsetAt_InheritsWithoutFiredRule(t *testing.T) {
	bucket := []rule{
		{from: 1980, to: 1990, pattern: tzmodel.DaylightSavingRule{
			Month: time.April, Day: tzdata.NewDayNum(1), TimeOfDay: 2 * 3600, Saving: 3600,
		}},
	}
	// Before the rule fires in its first year, the old offset stays.
	got := ruleOffsetAt(bucket, 3600, 1800, 1980, 0)
	require.Equal(t, 1800, got)

	// A year no rule covers yields zero.
	got = ruleOffsetAt(bucket, 3600, 1800, 1979, 0)
	require.Equal(t, 0, got)
}
