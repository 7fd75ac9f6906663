package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philjestin/ratchet/internal/counts"
	"github.com/philjestin/ratchet/internal/model"
	"github.com/philjestin/ratchet/internal/mutate"
)

var tightenRegion string

var tightenCmd = &cobra.Command{
	Use:   "tighten [rule-id]",
	Short: "Lower budgets down to their observed counts",
	Long: "Lowers the budget of every (rule, region) entry whose observed count is\n" +
		"below its current budget, optionally restricted to one rule and/or region.\n" +
		"Refuses to make any change if a selected entry is already over budget.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := loadWorkspace()
		if err != nil {
			return err
		}

		entries, _, err := ws.check(cmd.Context())
		if err != nil {
			return err
		}

		var ruleFilter *model.RuleId
		if len(args) == 1 {
			id := model.RuleId(args[0])
			ruleFilter = &id
		}
		var regionFilter *string
		if tightenRegion != "" {
			regionFilter = &tightenRegion
		}

		doc := ws.doc.Clone()
		changed, err := mutate.Tighten(entries, doc, ruleFilter, regionFilter)
		if err != nil {
			return err
		}
		if !changed {
			fmt.Println("no budgets to tighten")
			return nil
		}
		if err := counts.Write(countsPath(ws.root), doc); err != nil {
			return err
		}
		fmt.Println("tightened budgets written")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tightenCmd)
	tightenCmd.Flags().StringVar(&tightenRegion, "region", "", "restrict to a single region path")
}
