package main

import (
	"fmt"
	"os"

	"github.com/bnema/wlhandle/cmd"
	"github.com/bnema/wlhandle/internal/ui"
	"github.com/bnema/wlhandle/internal/wayland"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.FormatError(err.Error()))
		os.Exit(wayland.ExitCode(err))
	}
}
