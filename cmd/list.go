package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philjestin/ratchet/internal/model"
	"github.com/philjestin/ratchet/internal/rule"
)

var listFormat string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the active rule set after override and config/language filtering",
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := loadWorkspace()
		if err != nil {
			return err
		}

		switch listFormat {
		case "jsonl":
			enc := json.NewEncoder(os.Stdout)
			for _, r := range ws.rules {
				rec := struct {
					Type     string `json:"type"`
					ID       string `json:"id"`
					Kind     string `json:"kind"`
					Severity string `json:"severity"`
				}{Type: "rule", ID: string(r.ID), Kind: kindName(r.Kind), Severity: r.Severity}
				if err := enc.Encode(rec); err != nil {
					return &model.IoError{Path: "stdout", Err: err}
				}
			}
		default:
			for _, r := range ws.rules {
				fmt.Printf("%-30s %-6s %s\n", r.ID, kindName(r.Kind), r.Severity)
			}
		}
		return nil
	},
}

func kindName(k rule.Kind) string {
	if k == rule.KindAst {
		return "ast"
	}
	return "regex"
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listFormat, "format", "human", "output format: human|jsonl")
}
