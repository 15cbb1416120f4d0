package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"skihide/internal/housekeeping"
	"skihide/internal/update"
)

var cleanTempCmd = &cobra.Command{
	Use:   "clean-temp",
	Short: "Delete temporary files",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		report, err := housekeeping.CleanTemp(dir, log)
		if err != nil {
			return err
		}
		return printResult(cmd, report)
	},
}

type trimReport struct {
	Cleaned int `json:"cleaned" yaml:"cleaned"`
	Failed  int `json:"failed" yaml:"failed"`
}

var trimMemoryCmd = &cobra.Command{
	Use:   "trim-memory",
	Short: "Trim the working set of running processes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cleaned, failed, err := housekeeping.TrimWorkingSets(log)
		if err != nil {
			return err
		}
		return printResult(cmd, trimReport{Cleaned: cleaned, Failed: failed})
	},
}

var checkUpdateCmd = &cobra.Command{
	Use:   "check-update",
	Short: "Check whether a newer build is available",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), update.DefaultTimeout)
		defer cancel()

		res, err := update.NewChecker(cfg.GetUpdateURL(), update.CurrentBuild()).Check(ctx)
		if err != nil {
			return err
		}
		return printResult(cmd, res)
	},
}

func init() {
	cleanTempCmd.Flags().String("dir", os.TempDir(), "directory to clean")
	rootCmd.AddCommand(cleanTempCmd, trimMemoryCmd, checkUpdateCmd)
}
