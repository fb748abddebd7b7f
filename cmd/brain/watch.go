package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/steveyegge/brain/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print a line each time another process writes the index artifacts",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := resolveRoot()
		if err != nil {
			return err
		}

		n, err := watch.New(root)
		if err != nil {
			return fmt.Errorf("starting watcher: %w", err)
		}
		defer n.Close()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		fmt.Fprintln(os.Stderr, "watching", root, "(ctrl-c to stop)")
		for {
			select {
			case name, ok := <-n.Changed:
				if !ok {
					return nil
				}
				fmt.Println(name, "changed")
			case <-sig:
				return nil
			}
		}
	},
}
