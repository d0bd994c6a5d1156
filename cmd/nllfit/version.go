package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hepworks/nllfit"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of nllfit",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("nllfit version %s\n", strings.TrimSpace(nllfit.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
