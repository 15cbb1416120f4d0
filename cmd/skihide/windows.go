package main

import (
	"github.com/spf13/cobra"

	"skihide/internal/hider"
	"skihide/internal/wm"
)

var windowsCmd = &cobra.Command{
	Use:   "windows [query]",
	Short: "List windows that can be hidden",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := wm.NewManager(log, cfg.GetExcludeTitles())
		if err != nil {
			return err
		}
		windows, err := manager.ListWindows()
		if err != nil {
			return err
		}
		if len(args) == 1 {
			windows = hider.FilterWindows(windows, args[0])
		}
		if windows == nil {
			windows = []wm.Window{}
		}
		return printResult(cmd, windows)
	},
}

func init() {
	rootCmd.AddCommand(windowsCmd)
}
