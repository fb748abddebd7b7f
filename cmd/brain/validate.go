package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/steveyegge/brain/internal/validation"
)

var validateFull bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run structural checks against the committed index artifacts",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := resolveRoot()
		if err != nil {
			return err
		}
		report, err := validation.Validate(root, validation.Committed, validateFull, 0)
		if err != nil {
			return err
		}

		if jsonOutput {
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
		} else {
			for _, e := range report.Errors {
				fmt.Println(errorStyle.Render("error"), e.Field+":", e.Reason)
			}
			for _, w := range report.Warnings {
				fmt.Println(warningStyle.Render("warning"), w)
			}
			if len(report.Errors) == 0 && len(report.Warnings) == 0 {
				fmt.Println(okStyle.Render("ok"), "no structural errors or warnings")
			}
		}
		if len(report.Errors) > 0 {
			return fmt.Errorf("validation found %d error(s)", len(report.Errors))
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().BoolVar(&validateFull, "full", false, "Also run the back-reference and contamination detectors")
}
