package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/spf13/cobra"
	"github.com/steveyegge/brain/internal/bwt"
	"github.com/steveyegge/brain/internal/types"
)

var (
	deleteRecordID string
	deleteYes      bool
	deleteSince    string
)

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Permanently remove a deprecated record and its document",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !deleteYes && !confirmDelete(deleteRecordID) {
			fmt.Fprintln(os.Stderr, "aborted")
			return nil
		}

		root, err := resolveRoot()
		if err != nil {
			return err
		}

		intent := types.Intent{
			Action:        types.ActionDelete,
			RecordID:      deleteRecordID,
			UserConfirmed: true,
		}
		if deleteSince != "" {
			start, err := parseSessionStart(deleteSince)
			if err != nil {
				return fmt.Errorf("parsing --since: %w", err)
			}
			intent.SessionStart = &start
		}

		engine := &bwt.Engine{Root: root, Log: logger}
		resp := engine.Execute(intent)
		return printResponse(resp)
	},
}

func init() {
	deleteCmd.Flags().StringVar(&deleteRecordID, "id", "", "Record ID to delete")
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the interactive confirmation prompt")
	deleteCmd.Flags().StringVar(&deleteSince, "since", "", `When the current session began, e.g. "2 hours ago" (default: now)`)
	_ = deleteCmd.MarkFlagRequired("id")
}

// parseSessionStart parses a natural-language session-start expression for
// the delete gate's "not in the same session" check.
func parseSessionStart(expr string) (time.Time, error) {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	result, err := w.Parse(expr, time.Now())
	if err != nil {
		return time.Time{}, err
	}
	if result == nil {
		return time.Time{}, fmt.Errorf("could not parse %q as a time expression", expr)
	}
	return result.Time, nil
}

func confirmDelete(recordID string) bool {
	fmt.Fprintf(os.Stderr, "permanently delete %s? [y/N] ", recordID)
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.EqualFold(strings.TrimSpace(line), "y")
}
