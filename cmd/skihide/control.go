package main

import (
	"github.com/spf13/cobra"

	"skihide/internal/ipc"
)

// controlCmd sends command to the running instance.
func controlCmd(command, short string) *cobra.Command {
	return &cobra.Command{
		Use:   command,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := ipc.NewClient(socketPath, log).SendCommand(command)
			if err != nil {
				return err
			}
			return printResult(cmd, resp)
		},
	}
}

func init() {
	rootCmd.AddCommand(
		controlCmd(ipc.CommandToggle, "Toggle the selected window in the running instance"),
		controlCmd(ipc.CommandShow, "Bring the running instance to the front"),
		controlCmd(ipc.CommandStatus, "Show which windows are hidden"),
		controlCmd(ipc.CommandQuit, "Quit the running instance"),
	)
}
