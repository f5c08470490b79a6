// Command judgectl is a small operator CLI for a running judge-server:
// check its liveness, list its language catalogue, and submit a local
// source file for judging. Grounded on the teacher's cmd/cli package
// (an HTTP-client-backed operator tool), rebuilt on cobra rather than
// the teacher's bespoke REPL since this tool is a one-shot command
// runner, not an interactive session.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"judgeengine/internal/judgectl"
)

func main() {
	root := &cobra.Command{
		Use:   "judgectl",
		Short: "Operator CLI for a running judge-server instance",
	}

	var baseURL string
	root.PersistentFlags().StringVar(&baseURL, "base", "http://localhost:3000", "base URL of the judge-server instance")

	root.AddCommand(healthCmd(&baseURL))
	root.AddCommand(languagesCmd(&baseURL))
	root.AddCommand(submitCmd(&baseURL))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func healthCmd(baseURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check liveness and queue status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return judgectl.PrintHealth(cmd.Context(), *baseURL)
		},
	}
}

func languagesCmd(baseURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the supported language catalogue",
		RunE: func(cmd *cobra.Command, args []string) error {
			return judgectl.PrintLanguages(cmd.Context(), *baseURL)
		},
	}
}

func submitCmd(baseURL *string) *cobra.Command {
	var (
		language    string
		inputPath   string
		expectPath  string
		timeLimit   int
		memoryLimit int64
	)

	cmd := &cobra.Command{
		Use:   "submit <source-file>",
		Short: "Judge a single local source file against one optional test case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return judgectl.Submit(cmd.Context(), *baseURL, judgectl.SubmitOptions{
				SourcePath:   args[0],
				Language:     language,
				InputPath:    inputPath,
				ExpectedPath: expectPath,
				TimeLimitS:   timeLimit,
				MemoryMB:     memoryLimit,
			})
		},
	}

	cmd.Flags().StringVar(&language, "language", "", "language tag (required)")
	cmd.Flags().StringVar(&inputPath, "input", "", "path to stdin input file (optional)")
	cmd.Flags().StringVar(&expectPath, "expect", "", "path to expected-output file (optional; enables judging instead of raw execution)")
	cmd.Flags().IntVar(&timeLimit, "time-limit", 0, "per-case time limit in seconds (0 = server default)")
	cmd.Flags().Int64Var(&memoryLimit, "memory-limit", 0, "memory limit in MB (0 = server default)")
	cmd.MarkFlagRequired("language")

	return cmd
}
