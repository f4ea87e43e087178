package main

import (
	"fmt"
	"os"

	"matchd/internal/matchctl"
)

func main() {
	if err := matchctl.BuildRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
