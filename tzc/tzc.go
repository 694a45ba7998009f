// Package tzc compiles parsed tz source files into a binary timezone
// repository. It joins the flat rule and zone tables by name, synthesises
// the transition history of every zone and resolves links and leap seconds
// into the container written by package tzrepo.
package tzc

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/MenoData/TZTool/internal/gregorian"
	"github.com/MenoData/TZTool/internal/unixtime"
	"github.com/MenoData/TZTool/tzdata"
	"github.com/MenoData/TZTool/tzmodel"
	"github.com/MenoData/TZTool/tzrepo"
)

// CompilerFiles is the set of files of a tzdata distribution the compiler
// reads. Everything else in a distribution is ignored.
var CompilerFiles = []string{
	"africa",
	"antarctica",
	"asia",
	"australasia",
	"backward",
	"etcetera",
	"europe",
	"leapseconds",
	tzdata.LeapSecondsList, // only for the expiry date
	"northamerica",
	"southamerica",
}

// Options control a compile run.
type Options struct {
	// LMT keeps the local-mean-time eras of the zones. Such eras are an
	// invention that only holds for the archetypical city of a zone, so the
	// default is to elide them.
	LMT bool
	// Log receives progress and warnings. Nil discards everything.
	Log *logrus.Logger
}

func (o Options) log() *logrus.Logger {
	if o.Log != nil {
		return o.Log
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Compile translates the accepted files of a tzdata distribution, given as
// a map of file name to file content, into a repository for the given
// version.
func Compile(version string, files map[string]string, opts Options) (*tzrepo.Repository, error) {
	log := opts.log()

	c, err := classify(files, log)
	if err != nil {
		return nil, err
	}

	repo := &tzrepo.Repository{Version: version}

	ids := make([]string, 0, len(c.zones))
	for id := range c.zones {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		history, err := synthesizeZone(id, c.zones[id], c.rules, opts.LMT)
		if err != nil {
			return nil, err
		}
		var blob bytes.Buffer
		if err := history.Encode(&blob); err != nil {
			return nil, fmt.Errorf("encoding history of %s: %w", id, err)
		}
		repo.Zones = append(repo.Zones, tzrepo.Zone{ID: id, History: blob.Bytes()})
	}

	aliases, err := resolveLinks(ids, c.links)
	if err != nil {
		return nil, err
	}
	repo.Aliases = aliases

	for _, l := range c.leaps {
		repo.Leaps = append(repo.Leaps, tzrepo.Leap{
			Year:  l.Year,
			Month: int(l.Month),
			Day:   l.Day,
			Shift: l.Shift,
		})
	}
	repo.Expiry = tzrepo.Date{Year: c.expiry.Year, Month: int(c.expiry.Month), Day: c.expiry.Day}

	log.WithFields(logrus.Fields{
		"zones": len(repo.Zones),
		"links": len(repo.Aliases),
		"leaps": len(repo.Leaps),
	}).Info("repository assembled")

	return repo, nil
}

// rule is one line of a rule family joined with its realised pattern.
type rule struct {
	from, to tzdata.Year
	pattern  tzmodel.DaylightSavingRule
	letter   string
}

// era is one zone or continuation line with its boundary resolved to a
// concrete timestamp. The until value is tagged with the indicator that
// tells which reference frame it lives in; the shift to universal time is
// applied during synthesis because it depends on the daylight saving offset
// in effect when the era ends.
type era struct {
	rawOffset   int
	ruleName    string // empty unless the RULES column names a family
	fixedSaving int    // fixed saving, zero for "-"
	hasFixed    bool
	format      string
	until       int64
	indicator   tzdata.Indicator
	hasUntil    bool
}

// classified is the frozen result of the classification stage.
type classified struct {
	zones  map[string][]era
	rules  map[string][]rule
	links  map[string]string // alias -> target
	leaps  []tzdata.LeapLine
	expiry tzdata.Date
}

// classify parses every accepted file and distributes its lines into the
// rule, zone, link and leap tables. Rule buckets are kept sorted by the
// in-year firing instant of their patterns; ties keep insertion order.
func classify(files map[string]string, log *logrus.Logger) (*classified, error) {
	c := &classified{
		zones: make(map[string][]era),
		rules: make(map[string][]rule),
		links: make(map[string]string),
	}

	for _, name := range CompilerFiles {
		content, ok := files[name]
		if !ok {
			continue
		}
		log.WithField("file", name).Info("parsing")

		f, err := tzdata.Parse(name, strings.NewReader(content))
		if err != nil {
			return nil, err
		}

		for _, skipped := range f.SkippedRules {
			log.WithField("file", name).Warnf("ignoring rule line with filled type info: %s", skipped)
		}

		for _, rl := range f.RuleLines {
			bucket := append(c.rules[rl.Name], rule{
				from:    rl.From,
				to:      rl.To,
				pattern: patternOf(rl),
				letter:  rl.Letter,
			})
			sort.SliceStable(bucket, func(i, j int) bool {
				return bucket[i].pattern.PrototypeTime() < bucket[j].pattern.PrototypeTime()
			})
			c.rules[rl.Name] = bucket
		}

		var zoneID string
		for _, zl := range f.ZoneLines {
			if !zl.Continuation {
				zoneID = zl.Name
				c.zones[zoneID] = nil // a redefinition replaces the zone
			}
			c.zones[zoneID] = append(c.zones[zoneID], eraOf(zl))
		}

		for _, ll := range f.LinkLines {
			c.links[ll.Alias] = ll.Target
		}

		c.leaps = append(c.leaps, f.LeapLines...)

		if f.HasExpiry {
			c.expiry = f.Expiry
		}
	}

	if err := validate(c); err != nil {
		return nil, err
	}
	return c, nil
}

// validate checks the cross-table invariants of the classified input: every
// era list is closed by exactly one open-ended line, and every referenced
// rule family exists.
func validate(c *classified) error {
	for id, eras := range c.zones {
		for i, e := range eras {
			if e.hasUntil == (i == len(eras)-1) {
				if e.hasUntil {
					return fmt.Errorf("[%s] zone not closed: last era has UNTIL", id)
				}
				return fmt.Errorf("[%s] era %d has no UNTIL but is not the last", id, i)
			}
			if i > 0 && eras[i-1].hasUntil && e.hasUntil && e.until <= eras[i-1].until {
				return fmt.Errorf("[%s] era boundaries not increasing at era %d", id, i)
			}
			if e.ruleName != "" {
				if len(c.rules[e.ruleName]) == 0 {
					return fmt.Errorf("[%s] undefined rule name: %s", id, e.ruleName)
				}
			}
		}
	}
	return nil
}

// patternOf converts the recurring part of a rule line into its pattern.
func patternOf(rl tzdata.RuleLine) tzmodel.DaylightSavingRule {
	return tzmodel.DaylightSavingRule{
		Month:     rl.In,
		Day:       rl.On,
		TimeOfDay: rl.At.Seconds,
		Indicator: rl.At.Indicator,
		Saving:    rl.Save,
	}
}

// eraOf converts a parsed zone line into an era with a concrete boundary
// timestamp.
func eraOf(zl tzdata.ZoneLine) era {
	e := era{
		rawOffset: zl.Offset,
		format:    zl.Format,
	}
	switch zl.Rules.Form {
	case tzdata.RulesName:
		e.ruleName = zl.Rules.Name
	case tzdata.RulesFixed:
		e.hasFixed = true
		e.fixedSaving = zl.Rules.Save
	case tzdata.RulesNone:
		// Standard time always applies, which is a fixed saving of zero.
		e.hasFixed = true
	}
	if u := zl.Until; u.Defined {
		y, m, d := gregorian.DayOfMonth(u.Year, u.Month, u.Day)
		e.until = unixtime.FromDate(y, int(m), d) + int64(u.Time.Seconds)
		e.indicator = u.Time.Indicator
		e.hasUntil = true
	}
	return e
}

// resolveLinks follows every alias chain to its canonical zone and maps it
// to the index of that zone in the sorted ID list.
func resolveLinks(sortedIDs []string, links map[string]string) ([]tzrepo.Alias, error) {
	var aliases []tzrepo.Alias
	for alias := range links {
		key := alias
		for i := 0; i <= len(links); i++ { // bounded in case a chain cycles
			target, ok := links[key]
			if !ok {
				break
			}
			key = target
		}
		idx := sort.SearchStrings(sortedIDs, key)
		if idx >= len(sortedIDs) || sortedIDs[idx] != key {
			return nil, fmt.Errorf("link target not found: %s", alias)
		}
		aliases = append(aliases, tzrepo.Alias{Name: alias, Index: idx})
	}
	sort.Slice(aliases, func(i, j int) bool { return aliases[i].Name < aliases[j].Name })
	return aliases, nil
}
