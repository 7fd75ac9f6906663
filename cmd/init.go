package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/philjestin/ratchet/internal/model"
)

var initForce bool

type scaffoldFile struct {
	path     string
	contents string
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold ratchet.toml, ratchet-counts.toml, and a ratchets/ rule tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		root := viper.GetString("root")
		if root == "" {
			root = "."
		}

		files := []scaffoldFile{
			{filepath.Join(root, "ratchet.toml"), initRatchetToml},
			{filepath.Join(root, "ratchet-counts.toml"), initCountsToml},
			{filepath.Join(root, "ratchets", "regex", "no-todo.toml"), initRegexRule},
			{filepath.Join(root, "ratchets", "ast", ".gitkeep"), ""},
		}

		for _, f := range files {
			if !initForce {
				if _, err := os.Stat(f.path); err == nil {
					fmt.Println("skipping", f.path, "(already exists, use --force to overwrite)")
					continue
				}
			}
			if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
				return &model.IoError{Path: f.path, Err: err}
			}
			if err := os.WriteFile(f.path, []byte(f.contents), 0o644); err != nil {
				return &model.IoError{Path: f.path, Err: err}
			}
			fmt.Println("wrote", f.path)
		}
		return nil
	},
}

const initRatchetToml = `[ratchet]
version = "1"
languages = ["go", "javascript", "typescript", "python", "rust"]
include = []
exclude = []

[rules]
# no-todo = false            # disable a rule entirely
# no-unwrap = { severity = "error" }

[output]
format = "human"
color = "auto"
`

const initCountsToml = `[no-todo]
"." = 0
`

const initRegexRule = `id = "no-todo"
description = "Flags TODO/FIXME markers left in source comments"
pattern = '(?i)\b(TODO|FIXME)\b'
severity = "warning"
include-globs = ["**/*"]
`

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing files")
}
