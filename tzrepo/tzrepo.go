// Package tzrepo implements the binary timezone repository container.
//
// A repository file carries a complete compiled tzdata release: the version
// string, one opaque transition history blob per zone, the alias table with
// aliases resolved to indices into the sorted zone table, the leap second
// table and its expiry date.
package tzrepo

// Magic is the six-octet ASCII sequence "tzrepo" that identifies a
// repository file.
var Magic = [6]byte{'t', 'z', 'r', 'e', 'p', 'o'}

// FileName is the name of a repository file inside its
// tzdata<version> directory.
const FileName = "tzdata.repository"

// Zone is one entry of the zone table: the zone ID and the serialized
// transition history of the zone. The blob is opaque to the container; its
// layout is owned by the tzmodel package.
type Zone struct {
	ID      string
	History []byte
}

// Alias is one entry of the alias table. Index points at the canonical
// zone in the zone table, with any link chains already resolved.
type Alias struct {
	Name  string
	Index int
}

// Leap is one leap second: the calendar date of its occurrence and the
// shift direction, +1 for an inserted and -1 for a skipped second.
type Leap struct {
	Year  int
	Month int
	Day   int
	Shift int8
}

// Date is a calendar date, used for the expiry of the leap second table.
type Date struct {
	Year  int
	Month int
	Day   int
}

// Repository is the in-memory form of a repository file. Zones are ordered
// by ascending ID.
type Repository struct {
	Version string
	Zones   []Zone
	Aliases []Alias
	Leaps   []Leap
	Expiry  Date
}
