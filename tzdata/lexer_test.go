package tzdata

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestCleanLine(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"# just a comment", nil},
		{"Rule\tEU\t1981\tmax", []string{"Rule", "EU", "1981", "max"}},
		{"Rule   EU  1981    max", []string{"Rule", "EU", "1981", "max"}},
		{"  Zone Etc/UTC 0 - UTC # trailing comment", []string{"Zone", "Etc/UTC", "0", "-", "UTC"}},
		{"Link\tEurope/Istanbul\tAsia/Istanbul", []string{"Link", "Europe/Istanbul", "Asia/Istanbul"}},
		// Quoted fields keep whitespace and sharp characters.
		{`Rule "a # b" 2000 only`, []string{"Rule", "a # b", "2000", "only"}},
		{`"quoted   spaces"`, []string{"quoted   spaces"}},
		// Tabs between fields collapse, never multiply.
		{"a \t \t b", []string{"a", "b"}},
	}

	for _, c := range cases {
		got, err := cleanLine(c.in, nil)
		if err != nil {
			t.Fatalf("cleanLine(%q): %v", c.in, err)
		}
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Errorf("cleanLine(%q) mismatch (-want +got):\n%s", c.in, diff)
		}
	}
}

func TestCleanLine_ExpiryStamp(t *testing.T) {
	// 3928521600 NTP seconds is midnight of 2024-06-28.
	var exp expiryScanner
	fields, err := cleanLine("#@\t3928521600", &exp)
	if err != nil {
		t.Fatal(err)
	}
	if fields != nil {
		t.Errorf("expected no fields, got %v", fields)
	}
	if !exp.found {
		t.Fatal("expiry stamp not found")
	}
	want := Date{Year: 2024, Month: time.June, Day: 28}
	if diff := cmp.Diff(want, exp.date); diff != "" {
		t.Errorf("expiry date mismatch (-want +got):\n%s", diff)
	}
}

func TestCleanLine_ExpiryStampInvalid(t *testing.T) {
	var exp expiryScanner
	if _, err := cleanLine("#@ not-a-number", &exp); err == nil {
		t.Error("expected error for malformed expiry stamp")
	}
}
