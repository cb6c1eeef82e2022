// Command lexrank generates and compares lexicographic fractional ranks.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/lexrank/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err == nil {
		return
	}

	// Commands report their own failures; only print what cobra rejected.
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
