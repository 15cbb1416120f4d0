package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"skihide/internal/app"
	"skihide/internal/ipc"
	"skihide/internal/output"
	"skihide/internal/update"
	"skihide/pkg/config"
	"skihide/pkg/global"
	"skihide/pkg/logger"
)

var (
	configPath string
	debug      bool
	silent     bool
	socketPath string
	format     string

	log *logger.Logger
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "skihide",
	Short: "Hide and restore windows with a hotkey",
	Long: "SkiHide hides a chosen window on a global hotkey or mouse side button and restores it on the next press, " +
		"optionally muting system audio while anything is hidden. Without a subcommand it starts the GUI.",
	SilenceUsage: true,
}

func Execute() {
	defer func() {
		if log != nil {
			log.Close()
		}
	}()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentPreRunE = setup
	rootCmd.RunE = runGUI
	rootCmd.Version = fmt.Sprintf("%s (build %s)", update.Version, update.Build)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging and the log viewer")
	rootCmd.PersistentFlags().StringVar(&socketPath, "socket", ipc.DefaultSocketPath(), "control socket path")
	rootCmd.PersistentFlags().StringVar(&format, "format", "yaml", "output format: yaml or json")
	rootCmd.Flags().BoolVar(&silent, "silent", false, "start minimized to the tray")
}

// setup initializes logging, configuration and globals. The GUI logs to
// log.txt next to the config; subcommands log to stderr so stdout stays
// machine-readable.
func setup(cmd *cobra.Command, args []string) error {
	logLevel := zerolog.InfoLevel
	if debug {
		logLevel = zerolog.DebugLevel
	}

	opts := []logger.Option{logger.WithLevel(logLevel)}
	if cmd == rootCmd {
		logPath, err := logger.DefaultLogPath()
		if err != nil {
			return err
		}
		opts = append(opts, logger.WithFile(logPath))
		if debug {
			opts = append(opts, logger.WithConsole())
		}
	} else {
		if !debug {
			opts[0] = logger.WithLevel(zerolog.WarnLevel)
		}
		opts = append(opts, logger.WithWriter(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime}))
	}

	var err error
	log, err = logger.NewLogger(opts...)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log.Info("Starting SkiHide",
		"version", update.Version,
		"pid", os.Getpid(),
		"os", runtime.GOOS,
		"arch", runtime.GOARCH,
		"debug", debug)

	cfg, err = config.FindConfig(configPath, log)
	if err != nil {
		log.Error("Failed to load configuration", err, "provided_path", configPath)
		return err
	}

	global.InitGlobals(cfg, log)
	log.Debug("Global instances initialized successfully")
	return nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	skihide, err := app.NewSkiHide(app.Options{
		Debug:      debug,
		Silent:     silent,
		SocketPath: socketPath,
	})
	if errors.Is(err, app.ErrAlreadyRunning) {
		log.Info("Another instance is running, asked it to show its window")
		fmt.Fprintln(cmd.OutOrStdout(), "SkiHide is already running.")
		return nil
	}
	if err != nil {
		log.Error("Failed to create SkiHide", err)
		return err
	}

	if err := skihide.Run(); err != nil {
		log.Error("Application error", err)
		return err
	}
	log.Info("Exited normally")
	return nil
}

func printResult(cmd *cobra.Command, v interface{}) error {
	f, err := output.ParseFormat(format)
	if err != nil {
		return err
	}
	return output.Print(cmd.OutOrStdout(), f, v)
}
