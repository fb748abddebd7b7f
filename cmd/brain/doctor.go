package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/steveyegge/brain/internal/boot"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run a combined health check: boot drift, contamination, back-references, validation",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := resolveRoot()
		if err != nil {
			return err
		}
		report, err := boot.Doctor(root)
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
			for _, c := range report.Checks {
				fmt.Println(styleForStatus(c.Status).Render(string(c.Status)), c.Name+":", c.Message)
			}
			if report.OverallOK {
				fmt.Println(okStyle.Render("overall: healthy"))
			} else {
				fmt.Println(errorStyle.Render("overall: unhealthy"))
			}
		}
		if !report.OverallOK {
			return fmt.Errorf("doctor found issues")
		}
		return nil
	},
}

func styleForStatus(status boot.CheckStatus) interface{ Render(...string) string } {
	switch status {
	case boot.StatusError:
		return errorStyle
	case boot.StatusWarning:
		return warningStyle
	default:
		return okStyle
	}
}
