// Command tzrepodiff structurally compares two timezone repository files.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/google/go-cmp/cmp"

	"github.com/MenoData/TZTool/tzrepo"
)

func main() {
	if err := run(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()
	args := flag.Args()
	if len(args) != 2 {
		return fmt.Errorf("Usage: tzrepodiff <repository file A> <repository file B>")
	}

	af, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	bf, err := os.ReadFile(args[1])
	if err != nil {
		return err
	}

	arepo, err := tzrepo.Decode(bytes.NewReader(af))
	if err != nil {
		return err
	}

	brepo, err := tzrepo.Decode(bytes.NewReader(bf))
	if err != nil {
		return err
	}

	if diff := cmp.Diff(arepo, brepo); diff != "" {
		fmt.Println("repositories are different: -A +B")
		fmt.Println(diff)
	} else {
		fmt.Println("repositories are identical")
	}

	return nil
}
