package main

import (
	"fmt"
	"os"

	"github.com/penwyp/go-timer-analyzer/commands"
	"github.com/penwyp/go-timer-analyzer/internal/util"
)

func main() {
	err := commands.Execute()
	_ = util.CloseLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(commands.ExitCode(err))
	}
}
