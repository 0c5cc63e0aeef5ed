package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/carebot"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of carebot",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "carebot version %s\n", strings.TrimSpace(carebot.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
