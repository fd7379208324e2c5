// Command planner is a terminal process planner: a task board, a
// notification inbox, a calendar and a team chat over a seeded workspace.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
