package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/philjestin/ratchet/internal/aggregate"
	"github.com/philjestin/ratchet/internal/model"
	"github.com/philjestin/ratchet/internal/output"
)

var (
	checkFormat string
	checkColor  string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Evaluate the active rule set and compare against stored budgets",
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := loadWorkspace()
		if err != nil {
			return err
		}

		entries, diags, err := ws.check(cmd.Context())
		if err != nil {
			return err
		}
		for _, d := range diags {
			fmt.Fprintf(os.Stderr, "skipped %s for rule %s: %s\n", d.Path, d.Rule, d.Why)
		}

		format := checkFormat
		if format == "" {
			format = ws.cfg.Output.Format
		}
		if format == "" {
			format = "human"
		}

		switch format {
		case "jsonl":
			if err := output.WriteJSONL(os.Stdout, entries); err != nil {
				return &model.IoError{Path: "stdout", Err: err}
			}
		case "human":
			mode := output.ColorAuto
			switch checkColor {
			case "always":
				mode = output.ColorAlways
			case "never":
				mode = output.ColorNever
			}
			if err := output.WriteHuman(os.Stdout, entries, mode); err != nil {
				return &model.IoError{Path: "stdout", Err: err}
			}
		default:
			return &model.UsageError{Why: fmt.Sprintf("unknown --format %q", format)}
		}

		if n := aggregate.CountExceeded(entries); n > 0 {
			return &model.BudgetExceeded{Count: n}
		}
		if len(diags) > 0 {
			return &model.ParseFailures{Count: len(diags)}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkFormat, "format", "", "output format: human|jsonl (default: [output].format, else human)")
	checkCmd.Flags().StringVar(&checkColor, "color", "auto", "color mode for human output: auto|always|never")
	_ = viper.BindPFlag("output.format", checkCmd.Flags().Lookup("format"))
}
