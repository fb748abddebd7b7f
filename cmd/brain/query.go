package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/steveyegge/brain/internal/ifc"
	"github.com/steveyegge/brain/internal/query"
	"github.com/steveyegge/brain/internal/types"
)

var (
	queryScope   string
	queryScopeID string
	queryGoal    string
	queryTopK    int
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Retrieve the top-scoring records for a goal",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := resolveRoot()
		if err != nil {
			return err
		}

		resp, err := query.Run(root, types.QueryRequest{
			ScopeType: types.ScopeType(queryScope),
			ScopeID:   queryScopeID,
			Goal:      queryGoal,
			TopK:      queryTopK,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			data, err := ifc.EncodeQueryResponse(*resp)
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		for _, c := range resp.Candidates {
			fmt.Printf("%s  [%d]  %s\n    %s\n", c.RecordID, c.Score, c.Title, c.Summary)
		}
		fmt.Printf("(%d of %d)\n", len(resp.Candidates), resp.Total)
		return nil
	},
}

func init() {
	queryCmd.Flags().StringVar(&queryScope, "scope", "", "Scope type: project, agent, user, topic")
	queryCmd.Flags().StringVar(&queryScopeID, "scope-id", "", "Scope identifier")
	queryCmd.Flags().StringVar(&queryGoal, "goal", "", "Free-text goal to score candidates against")
	queryCmd.Flags().IntVar(&queryTopK, "top-k", 0, "Maximum candidates to return (default 10)")
}
