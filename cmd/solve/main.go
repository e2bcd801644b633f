// Command solve is the one-shot pipe adapter: it reads a solve request as
// JSON from stdin (or a file), runs a single bounded solve and writes the
// response as JSON to stdout.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"rota-solver/api"
	"rota-solver/internal/schedule"

	"github.com/spf13/cobra"
)

var (
	timeout   time.Duration
	inputPath string
)

var rootCmd = &cobra.Command{
	Use:          "solve",
	Short:        "Solve a weekly rota from a JSON request on stdin",
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().DurationVarP(&timeout, "timeout", "t", schedule.DefaultTimeout, "solver wall-clock budget")
	rootCmd.Flags().StringVarP(&inputPath, "input", "f", "", "read the request from a file instead of stdin")
}

func run(cmd *cobra.Command, _ []string) error {
	in := io.Reader(os.Stdin)
	if inputPath != "" {
		f, err := os.Open(inputPath)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	var req api.SolveRequest
	if err := json.NewDecoder(in).Decode(&req); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	resp, _ := schedule.Solve(ctx, &req)

	return json.NewEncoder(os.Stdout).Encode(resp)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
