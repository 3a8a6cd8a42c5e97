package main

import (
	"fmt"
	"os"

	"github.com/brimdata/nitro/cmd/nitro/explain"
	"github.com/brimdata/nitro/cmd/nitro/root"
	"github.com/brimdata/nitro/cmd/nitro/run"
)

func main() {
	nitro := root.Nitro
	nitro.Add(run.Cmd)
	nitro.Add(explain.Cmd)
	if err := nitro.ExecRoot(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}
