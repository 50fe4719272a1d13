package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "olv",
		Short:   "OpenAI Log Visualizer - parse and explore realtime API event logs",
		Version: version,
	}

	rootCmd.AddCommand(parseCmd())
	rootCmd.AddCommand(timelineCmd())
	rootCmd.AddCommand(audioCmd())
	rootCmd.AddCommand(indexCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(openCmd())
	rootCmd.AddCommand(doctorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
