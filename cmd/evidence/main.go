package main

import (
	"fmt"
	"os"
)

var Version = "dev"

func main() {
	rootCmd, a := newRootCmd()
	if err := execute(rootCmd, a); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
