package tzdata

import (
	"fmt"
	"strconv"
	"strings"
)

// ntpToUnix is the number of seconds between the NTP epoch
// (1900-01-01T00:00:00Z) and the Unix epoch (1970-01-01T00:00:00Z).
const ntpToUnix = 2208988800

// cleanLine strips comments and normalizes whitespace of a single input line.
// It returns the tab-separated fields of the line, or nil if the line is
// blank after comment stripping.
//
// The spec says:
//
//	Input lines are made up of fields.  Fields are separated from one
//	another by one or more white space characters.  The white space
//	characters are space, form feed, carriage return, newline, tab,
//	and vertical tab.  Leading and trailing white space on input
//	lines is ignored.  An unquoted sharp character (#) in the input
//	introduces a comment which extends to the end of the line the
//	sharp character appears on.  White space characters and sharp
//	characters may be enclosed in double quotes (") if they're to be
//	used as part of a field.  Any line that is blank (after comment
//	stripping) is ignored.
//
// One comment form carries data: the hash line "#@<NTP seconds>" in
// leap-seconds.list announces the expiry date of the leap second table.
// When expiry is non-nil such a payload is reported through it.
func cleanLine(line string, expiry *expiryScanner) ([]string, error) {
	line = strings.TrimSpace(line)

	var (
		sb        strings.Builder
		quotation bool
	)
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			quotation = !quotation
		case quotation:
			sb.WriteByte(c)
		case c == '#':
			if expiry != nil && i+1 < len(line) && line[i+1] == '@' {
				if err := expiry.scan(line[i+2:]); err != nil {
					return nil, err
				}
			}
			i = len(line) // comment runs to end of line
		case isSpace(c):
			if sb.Len() > 0 && sb.String()[sb.Len()-1] != '\t' {
				sb.WriteByte('\t')
			}
		default:
			sb.WriteByte(c)
		}
	}

	cleaned := strings.Trim(sb.String(), "\t")
	if cleaned == "" {
		return nil, nil
	}
	return strings.Split(cleaned, "\t"), nil
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\f', '\r', '\n', '\v':
		return true
	}
	return false
}

// expiryScanner captures the "#@" hash line of leap-seconds.list.
type expiryScanner struct {
	date  Date
	found bool
}

// scan parses the payload of a "#@" line, an integer count of seconds
// since the NTP epoch, and records the corresponding calendar date.
func (e *expiryScanner) scan(payload string) error {
	ntp, err := strconv.ParseInt(strings.TrimSpace(payload), 10, 64)
	if err != nil {
		return fmt.Errorf("expiry stamp: %w", err)
	}
	e.date = dateOfUnix(ntp - ntpToUnix)
	e.found = true
	return nil
}
