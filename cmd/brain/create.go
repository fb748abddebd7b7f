package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/steveyegge/brain/internal/bwt"
	"github.com/steveyegge/brain/internal/ifc"
	"github.com/steveyegge/brain/internal/types"
)

var (
	createScope      string
	createScopeID    string
	createType       string
	createTitle      string
	createSummary    string
	createTags       []string
	createSourceType string
	createSourceRef  string
	createContent    string
	createAllowDir   bool
	createForm       bool
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Write a new record and its document",
	RunE: func(cmd *cobra.Command, args []string) error {
		if createForm || createTitle == "" {
			if err := runCreateForm(); err != nil {
				return err
			}
		}

		root, err := resolveRoot()
		if err != nil {
			return err
		}
		if err := bwt.Init(root, timeNow()); err != nil {
			return fmt.Errorf("initializing store: %w", err)
		}

		intent := types.Intent{
			Action:            types.ActionCreate,
			SourceRef:         createSourceRef,
			Content:           &createContent,
			AllowFolderCreate: createAllowDir,
			Record: &types.RecordFields{
				ScopeType:  types.ScopeType(createScope),
				ScopeID:    createScopeID,
				Type:       types.RecordType(createType),
				Title:      createTitle,
				Summary:    createSummary,
				Tags:       createTags,
				SourceType: types.SourceType(createSourceType),
			},
		}

		engine := &bwt.Engine{Root: root, Log: logger}
		resp := engine.Execute(intent)
		return printResponse(resp)
	},
}

func init() {
	createCmd.Flags().StringVar(&createScope, "scope", "", "Scope type: project, agent, user, topic")
	createCmd.Flags().StringVar(&createScopeID, "scope-id", "", "Scope identifier")
	createCmd.Flags().StringVar(&createType, "type", "note", "Record type")
	createCmd.Flags().StringVar(&createTitle, "title", "", "Record title")
	createCmd.Flags().StringVar(&createSummary, "summary", "", "Record summary")
	createCmd.Flags().StringSliceVar(&createTags, "tag", nil, "Tag (axis/value), repeatable")
	createCmd.Flags().StringVar(&createSourceType, "source-type", "", "Source type")
	createCmd.Flags().StringVar(&createSourceRef, "source-ref", "", "Document path relative to the scope folder")
	createCmd.Flags().StringVar(&createContent, "content", "", "Document body")
	createCmd.Flags().BoolVar(&createAllowDir, "allow-folder-create", false, "Allow creating a new subfolder outside 30_topics")
	createCmd.Flags().BoolVar(&createForm, "form", false, "Force the interactive form even when flags are set")
}

func runCreateForm() error {
	scopeOptions := []huh.Option[string]{
		huh.NewOption("Topic", "topic"),
		huh.NewOption("Project", "project"),
		huh.NewOption("Agent", "agent"),
		huh.NewOption("User", "user"),
	}
	typeOptions := []huh.Option[string]{
		huh.NewOption("Note", "note"),
		huh.NewOption("Rule", "rule"),
		huh.NewOption("Decision", "decision"),
		huh.NewOption("Reference", "ref"),
		huh.NewOption("Candidate", "candidate"),
		huh.NewOption("Reminder", "reminder"),
		huh.NewOption("Profile", "profile"),
		huh.NewOption("Log", "log"),
		huh.NewOption("Project state", "project_state"),
	}
	sourceOptions := []huh.Option[string]{
		huh.NewOption("User confirmed", "user_confirmed"),
		huh.NewOption("Chat log", "chat_log"),
		huh.NewOption("External doc", "external_doc"),
		huh.NewOption("Candidate", "candidate"),
		huh.NewOption("Inference", "inference"),
	}

	var tagsInput string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Scope type").Options(scopeOptions...).Value(&createScope),
			huh.NewInput().Title("Scope ID").Value(&createScopeID).Validate(requireNonEmpty),
			huh.NewSelect[string]().Title("Record type").Options(typeOptions...).Value(&createType),
			huh.NewInput().Title("Title").Value(&createTitle).Validate(requireNonEmpty),
			huh.NewInput().Title("Summary").Value(&createSummary),
			huh.NewInput().Title("Tags (comma-separated axis/value pairs)").Value(&tagsInput),
			huh.NewSelect[string]().Title("Source type").Options(sourceOptions...).Value(&createSourceType),
			huh.NewInput().Title("Document path").Value(&createSourceRef).Validate(requireNonEmpty),
			huh.NewText().Title("Document content").Value(&createContent),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("create form: %w", err)
	}
	if tagsInput != "" {
		for _, t := range strings.Split(tagsInput, ",") {
			t = strings.TrimSpace(t)
			if t != "" {
				createTags = append(createTags, t)
			}
		}
	}
	return nil
}

func requireNonEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

func printResponse(resp types.Response) error {
	if jsonOutput {
		data, err := ifc.EncodeResponse(resp)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	} else if resp.Success {
		fmt.Printf("ok: %s (%s)\n", resp.RecordID, resp.Report.Step)
		for _, w := range resp.Report.Warnings {
			fmt.Fprintln(os.Stderr, "warning:", w)
		}
	} else {
		fmt.Fprintf(os.Stderr, "failed at step %s [%s]: %s\n", resp.Report.Step, resp.Report.Kind, resp.Report.Message)
		for _, fe := range resp.Report.Errors {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", fe.Field, fe.Reason)
		}
	}
	if !resp.Success {
		os.Exit(1)
	}
	return nil
}
