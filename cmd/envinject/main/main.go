package main

import (
	"os"

	"github.com/arthur-debert/envinject/cmd/envinject"
)

func main() {
	rootCmd := envinject.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		envinject.PrintError(rootCmd, err)
		os.Exit(1)
	}
}
