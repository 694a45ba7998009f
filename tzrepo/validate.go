package tzrepo

import (
	"errors"
	"fmt"
	"sort"
)

// Validate checks the structural invariants of a repository: a version is
// present, the zone table is strictly sorted by ID, every alias points into
// the zone table and every leap second shifts by exactly one second.
func Validate(r *Repository) error {
	var errs []error

	if r.Version == "" {
		errs = append(errs, errors.New("empty version"))
	}

	sorted := sort.SliceIsSorted(r.Zones, func(i, j int) bool {
		return r.Zones[i].ID < r.Zones[j].ID
	})
	if !sorted {
		errs = append(errs, errors.New("zone table not sorted by ID"))
	}
	for i := 1; i < len(r.Zones); i++ {
		if r.Zones[i].ID == r.Zones[i-1].ID {
			errs = append(errs, fmt.Errorf("duplicate zone ID %s", r.Zones[i].ID))
		}
	}
	for _, z := range r.Zones {
		if z.ID == "" {
			errs = append(errs, errors.New("empty zone ID"))
		}
		if len(z.History) == 0 {
			errs = append(errs, fmt.Errorf("zone %s: empty history blob", z.ID))
		}
	}

	for _, a := range r.Aliases {
		if a.Index < 0 || a.Index >= len(r.Zones) {
			errs = append(errs, fmt.Errorf("alias %s: index %d outside zone table", a.Name, a.Index))
		}
	}

	for i, l := range r.Leaps {
		if l.Shift != 1 && l.Shift != -1 {
			errs = append(errs, fmt.Errorf("leap %d: invalid shift %d", i, l.Shift))
		}
		if l.Month < 1 || l.Month > 12 || l.Day < 1 || l.Day > 31 {
			errs = append(errs, fmt.Errorf("leap %d: invalid date %04d-%02d-%02d", i, l.Year, l.Month, l.Day))
		}
	}

	return errors.Join(errs...)
}
