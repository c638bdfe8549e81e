package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvaldes/digital-toolkit/cmd/toolctl/commands"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "toolctl",
		Short: "Administration tool for the Digital Toolkit API",
		Long:  "CLI tool for managing category metadata, inspecting tool collections and user preferences",
	}

	rootCmd.AddCommand(commands.NewCategoriesCmd())
	rootCmd.AddCommand(commands.NewToolsCmd())
	rootCmd.AddCommand(commands.NewPrefsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
