// Package commands wires the protogen command tree.
package commands

import (
	"os"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "protogen",
		Short: "proto3 to JSON codec compiler",
		Long: `protogen compiles a restricted proto3 schema into a self-contained
Go module that serializes and deserializes the declared messages as
RFC-8259 JSON.

The emitted artifact defines, per message, a data structure, a
serializer, a deserializer with source-position error reporting, and
equality, clear, empty, and swap operations.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewCompileCommand())

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			titleColor := color.New(color.FgCyan, color.Bold)
			valueColor := color.New(color.FgWhite)

			titleColor.Print("protogen version: ")
			valueColor.Println(Version)

			titleColor.Print("Git commit: ")
			valueColor.Println(GitCommit)

			titleColor.Print("Build date: ")
			valueColor.Println(BuildDate)

			titleColor.Print("Go version: ")
			valueColor.Println(goVer)
		},
	}
}

// Execute runs the root command. Compile failures have already printed
// their diagnostic; anything else is rendered here.
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		if !isDiagnostic(err) {
			errorColor := color.New(color.FgRed, color.Bold)
			errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return err
	}
	return nil
}
