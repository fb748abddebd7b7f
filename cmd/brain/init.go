package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/steveyegge/brain/internal/bwt"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Idempotently create the folder skeleton and empty index artifacts at root",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := resolveRoot()
		if err != nil {
			return err
		}
		if err := bwt.Init(root, time.Now()); err != nil {
			return err
		}
		if !jsonOutput {
			fmt.Println(okStyle.Render("ok"), "initialized", root)
		}
		return nil
	},
}
