package tzc

import (
	"fmt"
	"math"

	"github.com/MenoData/TZTool/internal/unixtime"
	"github.com/MenoData/TZTool/tzdata"
	"github.com/MenoData/TZTool/tzmodel"
)

// synthesizeZone walks the eras of one zone in order, interleaves them with
// the matching rule families and materialises the full transition sequence.
// Rules that never expire are not expanded but returned as recurring
// patterns.
func synthesizeZone(id string, eras []era, rules map[string][]rule, lmt bool) (*tzmodel.TransitionHistory, error) {
	var (
		transitions   []tzmodel.ZonalTransition
		recurring     []tzmodel.DaylightSavingRule
		previous      *era
		dstOffset     int
		initialOffset int
		hasLMT        = true
		lmtCount      int
	)

	for i := range eras {
		current := &eras[i]

		if previous == nil { // first era
			if current.hasFixed {
				dstOffset = current.fixedSaving
			} else if current.ruleName != "" {
				bucket := rules[current.ruleName]
				earliest := bucket[0].from
				for _, r := range bucket {
					if r.from < earliest {
						earliest = r.from
					}
				}
				dstOffset = addRuleTransitions(
					&transitions, &recurring,
					current, dstOffset, bucket,
					int(earliest), math.MinInt64)
			}
			initialOffset = current.rawOffset + dstOffset
		} else {
			oldDst := dstOffset
			startTime := previous.until - int64(shift(previous.indicator, previous.rawOffset, oldDst))
			startYear := unixtime.YearOf(startTime)

			if current.hasFixed {
				dstOffset = current.fixedSaving
			} else if current.ruleName != "" {
				dstOffset = ruleOffsetAt(
					rules[current.ruleName],
					previous.rawOffset, oldDst,
					startYear, startTime)
			}

			if previous.rawOffset != current.rawOffset || dstOffset != oldDst {
				appendTransition(&transitions, tzmodel.ZonalTransition{
					PosixTime:      startTime,
					PreviousOffset: previous.rawOffset + oldDst,
					TotalOffset:    current.rawOffset + dstOffset,
					DaylightSaving: dstOffset,
				})
			}

			if current.ruleName != "" {
				dstOffset = addRuleTransitions(
					&transitions, &recurring,
					current, dstOffset, rules[current.ruleName],
					startYear, startTime)
			}
		}

		previous = current
		hasLMT = hasLMT && current.format == "LMT"
		if hasLMT {
			lmtCount++
		}
	}

	// Local mean time is recognised purely by the FORMAT column. Unless
	// requested, the leading LMT eras are dropped and the initial offset is
	// re-seeded from the last dropped transition.
	if !lmt {
		for lmtCount > 0 && len(transitions) > 0 {
			initialOffset = transitions[0].TotalOffset
			transitions = transitions[1:]
			lmtCount--
		}
	}

	history, err := tzmodel.NewHistory(initialOffset, transitions, recurring)
	if err != nil {
		return nil, fmt.Errorf("inconsistent data found for %s: %w", id, err)
	}
	return history, nil
}

// ruleOffsetAt determines the daylight saving offset a rule family imposes
// at the given instant: the saving of the latest rule of the start year
// that has already fired. Each candidate's firing instant is computed in
// the reference frame its own indicator selects, based on the saving of
// the rule before it. If no rule of the family covers the year the offset
// is zero; if none has fired yet the old offset stays in effect.
func ruleOffsetAt(bucket []rule, rawOffset, oldDst, year int, startTime int64) int {
	lines := make([]rule, 0, len(bucket))
	for _, r := range bucket {
		if int(r.from) <= year && int(r.to) >= year {
			lines = append(lines, r)
		}
	}

	for i := len(lines) - 1; i >= 0; i-- {
		r := lines[i]
		prevSavings := oldDst
		if i > 0 {
			prevSavings = lines[i-1].pattern.Saving
		}
		sh := shift(r.pattern.Indicator, rawOffset, prevSavings)
		if startTime >= r.pattern.PosixTime(year, sh) {
			return r.pattern.Saving
		}
	}

	if len(lines) == 0 {
		return 0
	}
	return oldDst
}

// addRuleTransitions expands the rule family of an era into concrete
// transitions between startTime and the era boundary. For the terminal era
// the expansion window is bounded by the largest finite rule year and the
// never-expiring rules are collected as recurring patterns instead.
// It returns the daylight saving offset in effect after the expansion.
func addRuleTransitions(
	transitions *[]tzmodel.ZonalTransition,
	recurring *[]tzmodel.DaylightSavingRule,
	e *era,
	dstOffset int,
	bucket []rule,
	startYear int,
	startTime int64,
) int {
	exit := false
	endYear := startYear

	if !e.hasUntil { // terminal era
		for _, r := range bucket {
			if r.to == tzdata.MaxYear {
				if int(r.from) > endYear {
					endYear = int(r.from)
				}
				*recurring = append(*recurring, r.pattern)
			} else if int(r.to) > endYear {
				endYear = int(r.to)
			}
		}
	} else {
		endYear = unixtime.YearOf(e.until)
	}

	for year := startYear - 1; !exit && year <= endYear+1; year++ {
		for _, r := range bucket { // ascending in-year order
			if int(r.from) > year || int(r.to) < year {
				continue
			}

			oldDst := dstOffset
			ruleShift := shift(r.pattern.Indicator, e.rawOffset, oldDst)
			tt := r.pattern.PosixTime(year, ruleShift)

			endTime := int64(math.MaxInt64)
			if e.hasUntil {
				endTime = e.until - int64(shift(e.indicator, e.rawOffset, oldDst))
			}

			if tt < startTime {
				continue
			}
			if tt >= endTime {
				exit = true
				break
			}
			dstOffset = r.pattern.Saving

			appendTransition(transitions, tzmodel.ZonalTransition{
				PosixTime:      tt,
				PreviousOffset: e.rawOffset + oldDst,
				TotalOffset:    e.rawOffset + dstOffset,
				DaylightSaving: dstOffset,
			})
		}
	}

	return dstOffset
}

// appendTransition adds a transition to the sequence. Two emissions at the
// identical instant collapse into one record that keeps the original
// previous offset and takes the new total and saving. Emissions that do not
// change the offsets are dropped.
func appendTransition(transitions *[]tzmodel.ZonalTransition, nt tzmodel.ZonalTransition) {
	if len(*transitions) == 0 {
		*transitions = append(*transitions, nt)
		return
	}

	last := &(*transitions)[len(*transitions)-1]
	if last.PosixTime == nt.PosixTime {
		last.TotalOffset = nt.TotalOffset
		last.DaylightSaving = nt.DaylightSaving
	} else if last.TotalOffset != nt.TotalOffset || last.DaylightSaving != nt.DaylightSaving {
		*transitions = append(*transitions, nt)
	}
}

// shift converts an indicator-tagged local value to universal time: a
// universal value needs no shift, a standard value is ahead by the raw
// offset and a wall clock value additionally by the daylight saving offset.
func shift(indicator tzdata.Indicator, rawOffset, dstOffset int) int {
	switch indicator {
	case tzdata.Universal:
		return 0
	case tzdata.Standard:
		return rawOffset
	case tzdata.Wall:
		return rawOffset + dstOffset
	default:
		panic(fmt.Sprintf("unknown indicator %v", indicator))
	}
}
