package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philjestin/ratchet/internal/counts"
	"github.com/philjestin/ratchet/internal/model"
	"github.com/philjestin/ratchet/internal/mutate"
)

var (
	bumpRegion string
	bumpCount  int
)

var bumpCmd = &cobra.Command{
	Use:   "bump <rule-id>",
	Short: "Raise a region's budget to accommodate new violations",
	Long: "Raises (rule, region)'s budget to --count, or to the freshly observed\n" +
		"violation count when --count is omitted. Refuses to set a budget below\n" +
		"the observed count, and refuses to create a region that isn't already\n" +
		"configured for the rule.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if bumpRegion == "" {
			return &model.UsageError{Why: "--region is required"}
		}
		ruleID := model.RuleId(args[0])

		ws, err := loadWorkspace()
		if err != nil {
			return err
		}

		entries, _, err := ws.check(cmd.Context())
		if err != nil {
			return err
		}

		count := 0
		found := false
		for _, e := range entries {
			if e.Rule == ruleID && e.Region == bumpRegion {
				count = e.Count
				found = true
				break
			}
		}
		if !found {
			return &model.UnknownRegion{Rule: ruleID, Region: bumpRegion}
		}

		var n *int
		if cmd.Flags().Changed("count") {
			n = &bumpCount
		}

		doc := ws.doc.Clone()
		newBudget, err := mutate.Bump(doc, ruleID, bumpRegion, count, n)
		if err != nil {
			return err
		}
		if err := counts.Write(countsPath(ws.root), doc); err != nil {
			return err
		}
		fmt.Printf("%s %s budget set to %d\n", ruleID, bumpRegion, newBudget)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bumpCmd)
	bumpCmd.Flags().StringVar(&bumpRegion, "region", "", "region path to bump (required)")
	bumpCmd.Flags().IntVar(&bumpCount, "count", 0, "explicit budget (default: the freshly observed count)")
}
