// main.go - terminal demo frontend for the dp2200 core.
//
// A thin consumer of the dp2200 package (SPEC_FULL.md Section 1): loads a
// memory image or TAP file named on argv, then drives it through a
// bubbletea program. Grounded on hejops-gone/cpu/debugger.go's Debug
// entry point (tea.NewProgram(model{...}).Run()).
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	dp2200 "github.com/dp2200/emulator"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <image.bin|image.tap>\n", filepath.Base(os.Args[0]))
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "dp2200: %v\n", err)
		os.Exit(1)
	}

	var machine *dp2200.Machine
	if strings.EqualFold(filepath.Ext(os.Args[1]), ".tap") {
		machine = dp2200.Build(nil, 1.0)
		machine.LoadCassette(data)
	} else {
		machine = dp2200.Build(data, 1.0)
	}

	if _, err := tea.NewProgram(newModel(machine), tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "dp2200: %v\n", err)
		os.Exit(1)
	}
}
