package main

import (
	"fmt"
	"os"

	"github.com/car1bo/snowattach/cmd/snowattach/commands"
	"github.com/car1bo/snowattach/internal/display"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, display.ErrorMsg("%v", err))
		os.Exit(1)
	}
}
