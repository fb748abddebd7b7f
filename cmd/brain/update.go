package main

import (
	"github.com/spf13/cobra"
	"github.com/steveyegge/brain/internal/bwt"
	"github.com/steveyegge/brain/internal/types"
)

var (
	updateRecordID    string
	updateTitle       string
	updateSummary     string
	updateSummarySet  bool
	updateTags        []string
	updateContent     string
	updateHasContent  bool
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Apply a partial update to an existing record and/or its document",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := resolveRoot()
		if err != nil {
			return err
		}

		intent := types.Intent{
			Action:   types.ActionUpdate,
			RecordID: updateRecordID,
		}
		if updateHasContent {
			intent.Content = &updateContent
		}
		fields := types.RecordFields{Title: updateTitle, Tags: updateTags}
		if updateSummarySet {
			fields.Summary = updateSummary
		}
		if fields.Title != "" || fields.Summary != "" || fields.Tags != nil {
			intent.Record = &fields
		}

		engine := &bwt.Engine{Root: root, Log: logger}
		resp := engine.Execute(intent)
		return printResponse(resp)
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateRecordID, "id", "", "Record ID to update")
	updateCmd.Flags().StringVar(&updateTitle, "title", "", "New title")
	updateCmd.Flags().StringVar(&updateSummary, "summary", "", "New summary")
	updateCmd.Flags().StringSliceVar(&updateTags, "tag", nil, "Replacement tags (repeatable)")
	updateCmd.Flags().StringVar(&updateContent, "content", "", "New document body")
	_ = updateCmd.MarkFlagRequired("id")

	updateCmd.PreRun = func(cmd *cobra.Command, args []string) {
		updateSummarySet = cmd.Flags().Changed("summary")
		updateHasContent = cmd.Flags().Changed("content")
	}
}
