package tzrepo

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// All multi-octet integer values are stored in big-endian byte order with
// two's complement for signed values. Strings are length-prefixed with an
// unsigned 16-bit octet count and encoded as UTF-8.
var order = binary.BigEndian

// Encode writes the repository to w, strictly in order: magic, version,
// zone table, alias table, leap second table, expiry date.
func (r *Repository) Encode(w io.Writer) error {
	if _, err := w.Write(Magic[:]); err != nil {
		return fmt.Errorf("write magic: %w", err)
	}
	if err := writeString(w, r.Version); err != nil {
		return fmt.Errorf("write version: %w", err)
	}

	if err := binary.Write(w, order, int32(len(r.Zones))); err != nil {
		return fmt.Errorf("write zone count: %w", err)
	}
	for _, z := range r.Zones {
		if err := writeString(w, z.ID); err != nil {
			return fmt.Errorf("write zone %s: %w", z.ID, err)
		}
		if err := binary.Write(w, order, int32(len(z.History))); err != nil {
			return fmt.Errorf("write zone %s: %w", z.ID, err)
		}
		if _, err := w.Write(z.History); err != nil {
			return fmt.Errorf("write zone %s: %w", z.ID, err)
		}
	}

	if err := binary.Write(w, order, uint16(len(r.Aliases))); err != nil {
		return fmt.Errorf("write alias count: %w", err)
	}
	for _, a := range r.Aliases {
		if err := writeString(w, a.Name); err != nil {
			return fmt.Errorf("write alias %s: %w", a.Name, err)
		}
		if err := binary.Write(w, order, uint16(a.Index)); err != nil {
			return fmt.Errorf("write alias %s: %w", a.Name, err)
		}
	}

	if err := binary.Write(w, order, uint16(len(r.Leaps))); err != nil {
		return fmt.Errorf("write leap count: %w", err)
	}
	for i, l := range r.Leaps {
		if err := writeLeap(w, l); err != nil {
			return fmt.Errorf("write leap %d: %w", i, err)
		}
	}

	if err := binary.Write(w, order, int16(r.Expiry.Year)); err != nil {
		return fmt.Errorf("write expiry: %w", err)
	}
	if _, err := w.Write([]byte{byte(r.Expiry.Month), byte(r.Expiry.Day)}); err != nil {
		return fmt.Errorf("write expiry: %w", err)
	}
	return nil
}

func writeLeap(w io.Writer, l Leap) error {
	if err := binary.Write(w, order, int16(l.Year)); err != nil {
		return err
	}
	_, err := w.Write([]byte{byte(l.Month), byte(l.Day), byte(l.Shift)})
	return err
}

func writeString(w io.Writer, s string) error {
	b := []byte(s)
	if len(b) > 0xFFFF {
		return fmt.Errorf("string too long: %d octets", len(b))
	}
	if err := binary.Write(w, order, uint16(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

// Decode reads a repository from r.
func Decode(r io.Reader) (*Repository, error) {
	var magic [6]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("read magic: %w", err)
	}
	if !bytes.Equal(magic[:], Magic[:]) {
		return nil, fmt.Errorf("invalid magic: %q", magic)
	}

	repo := &Repository{}
	var err error
	if repo.Version, err = readString(r); err != nil {
		return nil, fmt.Errorf("read version: %w", err)
	}

	var zoneCount int32
	if err := binary.Read(r, order, &zoneCount); err != nil {
		return nil, fmt.Errorf("read zone count: %w", err)
	}
	if zoneCount < 0 {
		return nil, fmt.Errorf("negative zone count %d", zoneCount)
	}
	for i := int32(0); i < zoneCount; i++ {
		var z Zone
		if z.ID, err = readString(r); err != nil {
			return nil, fmt.Errorf("read zone %d: %w", i, err)
		}
		var blobLen int32
		if err := binary.Read(r, order, &blobLen); err != nil {
			return nil, fmt.Errorf("read zone %s: %w", z.ID, err)
		}
		if blobLen < 0 {
			return nil, fmt.Errorf("read zone %s: negative blob length %d", z.ID, blobLen)
		}
		z.History = make([]byte, blobLen)
		if _, err := io.ReadFull(r, z.History); err != nil {
			return nil, fmt.Errorf("read zone %s: %w", z.ID, err)
		}
		repo.Zones = append(repo.Zones, z)
	}

	var aliasCount uint16
	if err := binary.Read(r, order, &aliasCount); err != nil {
		return nil, fmt.Errorf("read alias count: %w", err)
	}
	for i := uint16(0); i < aliasCount; i++ {
		var a Alias
		if a.Name, err = readString(r); err != nil {
			return nil, fmt.Errorf("read alias %d: %w", i, err)
		}
		var idx uint16
		if err := binary.Read(r, order, &idx); err != nil {
			return nil, fmt.Errorf("read alias %s: %w", a.Name, err)
		}
		a.Index = int(idx)
		repo.Aliases = append(repo.Aliases, a)
	}

	var leapCount uint16
	if err := binary.Read(r, order, &leapCount); err != nil {
		return nil, fmt.Errorf("read leap count: %w", err)
	}
	for i := uint16(0); i < leapCount; i++ {
		var (
			year int16
			rest [3]byte
		)
		if err := binary.Read(r, order, &year); err != nil {
			return nil, fmt.Errorf("read leap %d: %w", i, err)
		}
		if _, err := io.ReadFull(r, rest[:]); err != nil {
			return nil, fmt.Errorf("read leap %d: %w", i, err)
		}
		repo.Leaps = append(repo.Leaps, Leap{
			Year:  int(year),
			Month: int(rest[0]),
			Day:   int(rest[1]),
			Shift: int8(rest[2]),
		})
	}

	var expiryYear int16
	if err := binary.Read(r, order, &expiryYear); err != nil {
		return nil, fmt.Errorf("read expiry: %w", err)
	}
	var rest [2]byte
	if _, err := io.ReadFull(r, rest[:]); err != nil {
		return nil, fmt.Errorf("read expiry: %w", err)
	}
	repo.Expiry = Date{Year: int(expiryYear), Month: int(rest[0]), Day: int(rest[1])}

	return repo, nil
}

func readString(r io.Reader) (string, error) {
	var n uint16
	if err := binary.Read(r, order, &n); err != nil {
		return "", err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	return string(b), nil
}
