package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mmynk/splitbill/internal/calculator"
	"github.com/mmynk/splitbill/internal/config"
	"github.com/mmynk/splitbill/internal/service"
	"github.com/mmynk/splitbill/internal/snapshot"
)

func newSummarizeCommand(configPath *string) *cobra.Command {
	var remainder string

	cmd := &cobra.Command{
		Use:   "summarize <snapshot>",
		Short: "Compute who owes what for a bill snapshot file (YAML or JSON)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if remainder == "" {
				cfg, err := config.Load(*configPath)
				if err != nil {
					return err
				}
				remainder = cfg.Split.Remainder
			}
			policy, err := calculator.ParseRemainderPolicy(remainder)
			if err != nil {
				return err
			}
			return runSummarize(cmd.OutOrStdout(), args[0], policy)
		},
	}

	cmd.Flags().StringVar(&remainder, "remainder", "", `rounding remainder policy: "ignore" or "largest-share" (default from config)`)

	return cmd
}

func runSummarize(w io.Writer, path string, policy calculator.RemainderPolicy) error {
	snap, err := snapshot.ReadFile(path)
	if err != nil {
		return err
	}
	bill, err := snap.Model()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	summary, err := calculator.CalculateSummary(bill, calculator.WithRemainder(policy))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(service.ToAPISummary(summary))
}
