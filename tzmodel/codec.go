package tzmodel

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/MenoData/TZTool/tzdata"
)

// All multi-octet integer values of the history blob are stored in
// big-endian byte order with two's complement for signed values.
var order = binary.BigEndian

// historyVersion identifies the layout of a serialized history blob.
const historyVersion byte = 1

// Encode writes the history in its stable binary form:
//
//	+------+---------------------+
//	| ver  |  initial offset (4) |
//	+------+---------------------+-------------------------------+
//	| transition count (4) | transitions (count x 20)            |
//	+----------------------+-------------------------------------+
//	| rule count (1)       | rules (count x 13)                  |
//	+----------------------+-------------------------------------+
//
// Each transition is posix time (8), previous offset (4), total offset (4)
// and daylight saving (4). Each rule is month (1), day form (1), day number
// (1, signed), weekday (1), time of day (4), indicator (1), saving (4) --
// 13 octets.
func (h *TransitionHistory) Encode(w io.Writer) error {
	if _, err := w.Write([]byte{historyVersion}); err != nil {
		return err
	}
	if err := binary.Write(w, order, int32(h.InitialOffset)); err != nil {
		return err
	}
	if err := binary.Write(w, order, int32(len(h.Transitions))); err != nil {
		return err
	}
	for _, t := range h.Transitions {
		if err := binary.Write(w, order, t.PosixTime); err != nil {
			return err
		}
		if err := binary.Write(w, order, int32(t.PreviousOffset)); err != nil {
			return err
		}
		if err := binary.Write(w, order, int32(t.TotalOffset)); err != nil {
			return err
		}
		if err := binary.Write(w, order, int32(t.DaylightSaving)); err != nil {
			return err
		}
	}
	if err := binary.Write(w, order, uint8(len(h.Rules))); err != nil {
		return err
	}
	for _, r := range h.Rules {
		if err := writeRule(w, r); err != nil {
			return err
		}
	}
	return nil
}

func writeRule(w io.Writer, r DaylightSavingRule) error {
	head := []byte{
		byte(r.Month),
		byte(r.Day.Form),
		byte(int8(r.Day.Num)),
		byte(r.Day.Weekday),
	}
	if _, err := w.Write(head); err != nil {
		return err
	}
	if err := binary.Write(w, order, int32(r.TimeOfDay)); err != nil {
		return err
	}
	if _, err := w.Write([]byte{byte(r.Indicator)}); err != nil {
		return err
	}
	return binary.Write(w, order, int32(r.Saving))
}

// ReadHistory decodes a history blob and re-validates it.
func ReadHistory(r io.Reader) (*TransitionHistory, error) {
	var version [1]byte
	if _, err := io.ReadFull(r, version[:]); err != nil {
		return nil, fmt.Errorf("read version: %w", err)
	}
	if version[0] != historyVersion {
		return nil, fmt.Errorf("unsupported history version %d", version[0])
	}

	var initial int32
	if err := binary.Read(r, order, &initial); err != nil {
		return nil, fmt.Errorf("read initial offset: %w", err)
	}

	var transitionCount int32
	if err := binary.Read(r, order, &transitionCount); err != nil {
		return nil, fmt.Errorf("read transition count: %w", err)
	}
	if transitionCount < 0 {
		return nil, fmt.Errorf("negative transition count %d", transitionCount)
	}
	transitions := make([]ZonalTransition, 0, transitionCount)
	for i := int32(0); i < transitionCount; i++ {
		var (
			posix            int64
			prev, total, dst int32
		)
		if err := binary.Read(r, order, &posix); err != nil {
			return nil, fmt.Errorf("read transition %d: %w", i, err)
		}
		if err := binary.Read(r, order, &prev); err != nil {
			return nil, fmt.Errorf("read transition %d: %w", i, err)
		}
		if err := binary.Read(r, order, &total); err != nil {
			return nil, fmt.Errorf("read transition %d: %w", i, err)
		}
		if err := binary.Read(r, order, &dst); err != nil {
			return nil, fmt.Errorf("read transition %d: %w", i, err)
		}
		transitions = append(transitions, ZonalTransition{
			PosixTime:      posix,
			PreviousOffset: int(prev),
			TotalOffset:    int(total),
			DaylightSaving: int(dst),
		})
	}

	var ruleCount uint8
	if err := binary.Read(r, order, &ruleCount); err != nil {
		return nil, fmt.Errorf("read rule count: %w", err)
	}
	rules := make([]DaylightSavingRule, 0, ruleCount)
	for i := uint8(0); i < ruleCount; i++ {
		rule, err := readRule(r)
		if err != nil {
			return nil, fmt.Errorf("read rule %d: %w", i, err)
		}
		rules = append(rules, rule)
	}

	if len(transitions) == 0 {
		transitions = nil
	}
	if len(rules) == 0 {
		rules = nil
	}
	return NewHistory(int(initial), transitions, rules)
}

func readRule(r io.Reader) (DaylightSavingRule, error) {
	var head [4]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return DaylightSavingRule{}, err
	}
	var timeOfDay int32
	if err := binary.Read(r, order, &timeOfDay); err != nil {
		return DaylightSavingRule{}, err
	}
	var indicator [1]byte
	if _, err := io.ReadFull(r, indicator[:]); err != nil {
		return DaylightSavingRule{}, err
	}
	var saving int32
	if err := binary.Read(r, order, &saving); err != nil {
		return DaylightSavingRule{}, err
	}
	return DaylightSavingRule{
		Month: time.Month(head[0]),
		Day: tzdata.Day{
			Form:    tzdata.DayForm(head[1]),
			Num:     int(int8(head[2])),
			Weekday: time.Weekday(head[3]),
		},
		TimeOfDay: int(timeOfDay),
		Indicator: tzdata.Indicator(indicator[0]),
		Saving:    int(saving),
	}, nil
}
