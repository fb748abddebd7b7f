package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/steveyegge/brain/internal/query"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	glamour "charm.land/glamour/v2"
)

var showRecordID string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Render a record's document",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := resolveRoot()
		if err != nil {
			return err
		}
		rec, err := query.Detail(root, showRecordID)
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("record %q not found", showRecordID)
		}

		docPath := filepath.Join(root, rec.SourceRef)
		content, err := os.ReadFile(docPath) // #nosec G304 - path resolved from the record's own sourceRef
		if err != nil {
			return err
		}

		if !isWellFormedMarkdown(content) {
			fmt.Fprintln(os.Stderr, "warning: document did not parse cleanly as Markdown")
		}

		if jsonOutput {
			data, err := json.MarshalIndent(struct {
				Record  any    `json:"record"`
				Content string `json:"content"`
			}{Record: rec, Content: string(content)}, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
		if err != nil {
			fmt.Println(string(content))
			return nil
		}
		out, err := renderer.Render(string(content))
		if err != nil {
			fmt.Println(string(content))
			return nil
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	showCmd.Flags().StringVar(&showRecordID, "id", "", "Record ID to show")
	_ = showCmd.MarkFlagRequired("id")
}

// isWellFormedMarkdown is a cheap sanity check before rendering — goldmark's
// parser does not error on malformed input, so this only guards against an
// empty document tree, the one observable failure mode.
func isWellFormedMarkdown(content []byte) bool {
	reader := text.NewReader(content)
	doc := goldmark.DefaultParser().Parse(reader, parser.WithContext(parser.NewContext()))
	return doc != nil && doc.HasChildren()
}
