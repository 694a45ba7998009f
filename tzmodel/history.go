package tzmodel

import "fmt"

// ZonalTransition is a change of the total offset of a zone at a given
// instant.
type ZonalTransition struct {
	// PosixTime is the instant the transition takes effect.
	PosixTime int64
	// PreviousOffset is the total offset in seconds in effect immediately
	// before the transition.
	PreviousOffset int
	// TotalOffset is the total offset in seconds in effect at and after the
	// transition.
	TotalOffset int
	// DaylightSaving is the daylight saving part of TotalOffset in seconds.
	DaylightSaving int
}

// MaxRules bounds the number of recurring rules of a single zone. The
// serialized form stores the count in one octet; no real zone has more than
// two.
const MaxRules = 127

// ModelError reports an inconsistent transition model.
type ModelError struct {
	Reason string
}

func (e *ModelError) Error() string {
	return "inconsistent transition model: " + e.Reason
}

func modelErrorf(format string, args ...any) error {
	return &ModelError{Reason: fmt.Sprintf(format, args...)}
}

// TransitionHistory is the validated history of a single zone: the total
// offset before the first transition, the materialised transitions of the
// past, and the recurring rules describing the open-ended future.
type TransitionHistory struct {
	InitialOffset int
	Transitions   []ZonalTransition
	Rules         []DaylightSavingRule
}

// NewHistory validates the synthesised triple of a zone and combines it
// into a TransitionHistory. It fails with a ModelError if the transitions
// are not strictly increasing in time, if the offset chain is broken, or if
// the recurring rules are out of order.
func NewHistory(initialOffset int, transitions []ZonalTransition, rules []DaylightSavingRule) (*TransitionHistory, error) {
	if len(rules) > MaxRules {
		return nil, modelErrorf("too many recurring rules: %d", len(rules))
	}

	previous := initialOffset
	var lastTime int64
	for i, t := range transitions {
		if i > 0 && t.PosixTime <= lastTime {
			return nil, modelErrorf("transition times not strictly increasing at index %d: %d <= %d", i, t.PosixTime, lastTime)
		}
		if t.PreviousOffset != previous {
			return nil, modelErrorf("offset chain broken at index %d: previous offset %d, expected %d", i, t.PreviousOffset, previous)
		}
		previous = t.TotalOffset
		lastTime = t.PosixTime
	}

	for i := 1; i < len(rules); i++ {
		if rules[i].PrototypeTime() < rules[i-1].PrototypeTime() {
			return nil, modelErrorf("recurring rules out of order at index %d", i)
		}
	}

	return &TransitionHistory{
		InitialOffset: initialOffset,
		Transitions:   transitions,
		Rules:         rules,
	}, nil
}
