package main

import (
	"github.com/spf13/cobra"
	"github.com/steveyegge/brain/internal/bwt"
	"github.com/steveyegge/brain/internal/types"
)

var (
	deprecateRecordID string
	deprecateReplacedBy string
	deprecateReason   string
)

var deprecateCmd = &cobra.Command{
	Use:   "deprecate",
	Short: "Retire a record in favor of a replacement, or mark it obsolete",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := resolveRoot()
		if err != nil {
			return err
		}

		intent := types.Intent{
			Action:     types.ActionDeprecate,
			RecordID:   deprecateRecordID,
			ReplacedBy: &deprecateReplacedBy,
		}
		if deprecateReason != "" {
			intent.DeprecationReason = &deprecateReason
		}

		engine := &bwt.Engine{Root: root, Log: logger}
		resp := engine.Execute(intent)
		return printResponse(resp)
	},
}

func init() {
	deprecateCmd.Flags().StringVar(&deprecateRecordID, "id", "", "Record ID to deprecate")
	deprecateCmd.Flags().StringVar(&deprecateReplacedBy, "replaced-by", types.ReplacedByObsolete, `Successor record ID, or "obsolete"`)
	deprecateCmd.Flags().StringVar(&deprecateReason, "reason", "", `Required when --replaced-by is "obsolete"`)
	_ = deprecateCmd.MarkFlagRequired("id")
}
