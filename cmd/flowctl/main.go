// Command flowctl inspects and lays out patch files from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ingyamilmolinar/nodeflow/internal/config"
	"github.com/ingyamilmolinar/nodeflow/internal/log"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

var (
	title  = color.New(color.FgHiGreen, color.Bold)
	subtle = color.New(color.FgHiBlack)
	good   = color.New(color.FgGreen)
	bad    = color.New(color.FgRed)
	warn   = color.New(color.FgYellow)
)

// app is shared by every subcommand once the persistent flags are parsed.
type app struct {
	configPath string
	logLevel   string
	noColor    bool

	cfg    *config.Config
	logger *log.Logger
}

func (a *app) setup(cmd *cobra.Command) error {
	if a.noColor {
		color.NoColor = true
	}
	a.cfg = config.Default()
	if a.configPath != "" {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	level := a.cfg.Log.Level
	if cmd.Flags().Changed("log-level") {
		level = a.logLevel
	}
	a.logger = log.New(cmd.ErrOrStderr(), log.LevelFromString(level))
	if a.noColor {
		a.logger.Plain()
	}
	a.logger.Debugf("[FLOWCTL] config=%q level=%v", a.configPath, a.logger.Level())
	return nil
}

func newRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "flowctl",
		Short:         "Inspect, check and lay out node-graph patch files",
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (.toml, .yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "debug, info, error or none")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable coloured output")

	root.AddCommand(newLayoutCommand(a))
	root.AddCommand(newHitCommand(a))
	root.AddCommand(newCheckCommand(a))
	root.AddCommand(newDotCommand(a))
	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, bad.Sprint("error:"), err)
		os.Exit(1)
	}
}
