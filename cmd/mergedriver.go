package cmd

import (
	"github.com/spf13/cobra"

	"github.com/philjestin/ratchet/internal/counts"
)

// mergeDriverCmd implements the %O %A %B git merge-driver contract: base,
// ours, theirs paths, result written back over ours. Merge semantics only
// consult ours and theirs (see counts.Merge), but base is still loaded and
// parsed: a malformed base is a fatal parse failure like any other input,
// not a silently-skipped one.
var mergeDriverCmd = &cobra.Command{
	Use:   "merge-driver <base> <ours> <theirs>",
	Short: "Git merge driver for ratchet-counts.toml: pointwise minimum of both sides",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		basePath, oursPath, theirsPath := args[0], args[1], args[2]

		if _, err := counts.Load(basePath); err != nil {
			return err
		}

		ours, err := counts.Load(oursPath)
		if err != nil {
			return err
		}
		theirs, err := counts.Load(theirsPath)
		if err != nil {
			return err
		}

		merged := counts.Merge(ours, theirs)
		counts.EnsureRoot(merged)

		if err := counts.Write(oursPath, merged); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mergeDriverCmd)
}
