package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/envinject/cmd/envinject"
	"github.com/arthur-debert/envinject/internal/version"
)

func main() {
	rootCmd := envinject.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "ENVINJECT",
		Section: "1",
		Source:  "envinject " + version.Version,
		Manual:  "envinject manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
