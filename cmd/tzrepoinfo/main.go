// Command tzrepoinfo prints the contents of a timezone repository file.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/MenoData/TZTool/tzmodel"
	"github.com/MenoData/TZTool/tzrepo"
)

var (
	zoneFlag        = flag.String("zone", "", "Only print the zone with the given ID")
	transitionsFlag = flag.Bool("transitions", false, "Print every transition of the selected zones")
)

func main() {
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Println("Usage: tzrepoinfo [-zone ID] [-transitions] <repository file>")
		os.Exit(1)
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Println("reading file:", err)
		os.Exit(1)
	}

	repo, err := tzrepo.Decode(bytes.NewReader(b))
	if err != nil {
		fmt.Println("decoding:", err)
		os.Exit(1)
	}

	if err := printRepo(repo); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func printRepo(repo *tzrepo.Repository) error {
	fmt.Println("Version:", repo.Version)
	fmt.Println("Zones:", len(repo.Zones))

	for _, z := range repo.Zones {
		if *zoneFlag != "" && z.ID != *zoneFlag {
			continue
		}
		h, err := tzmodel.ReadHistory(bytes.NewReader(z.History))
		if err != nil {
			return fmt.Errorf("zone %s: %v", z.ID, err)
		}
		fmt.Printf("  %s: initial offset = %d, transitions = %d, rules = %d\n",
			z.ID, h.InitialOffset, len(h.Transitions), len(h.Rules))
		if *transitionsFlag {
			for _, t := range h.Transitions {
				fmt.Printf("    %d: %d -> %d (dst %d)\n",
					t.PosixTime, t.PreviousOffset, t.TotalOffset, t.DaylightSaving)
			}
			for _, r := range h.Rules {
				fmt.Printf("    recurring: %s %v at %d%s save %d\n",
					r.Month, r.Day.Form, r.TimeOfDay, indicatorSuffix(r), r.Saving)
			}
		}
	}

	if *zoneFlag == "" {
		fmt.Println("Aliases:", len(repo.Aliases))
		for _, a := range repo.Aliases {
			fmt.Printf("  %s -> %s\n", a.Name, repo.Zones[a.Index].ID)
		}
		fmt.Println("Leap seconds:", len(repo.Leaps))
		for _, l := range repo.Leaps {
			fmt.Printf("  %04d-%02d-%02d %+d\n", l.Year, l.Month, l.Day, l.Shift)
		}
		fmt.Printf("Expires: %04d-%02d-%02d\n", repo.Expiry.Year, repo.Expiry.Month, repo.Expiry.Day)
	}
	return nil
}

func indicatorSuffix(r tzmodel.DaylightSavingRule) string {
	return " (" + r.Indicator.String() + ")"
}
