// Command d2iface inspects the host interface tables offline: the registered
// builds, their merged tables and how they resolve against an installation.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/d2fps/d2interface/internal/config"
	"github.com/d2fps/d2interface/internal/logging"
)

var version = "dev" // set by the linker

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type app struct {
	cfgFile string
	cfg     config.Config
	log     *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:     "d2iface",
		Short:   "Inspect and resolve host interface tables",
		Version: version,
		Long: `d2iface works on the per-build address tables without a running host.
It lists the supported builds, dumps a build's merged tables, identifies a
Game.exe, lists a module's exports and resolves every table against an
installation directory.`,
		SilenceUsage: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd, a.cfgFile)
			if err != nil {
				return err
			}
			l, err := logging.New(cmd.ErrOrStderr(), cfg.Log)
			if err != nil {
				return err
			}
			a.cfg, a.log = cfg, l
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is d2iface.yaml in the user config or working directory)")
	cmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", "text", `log format ("text", "json")`)

	cmd.AddCommand(
		a.versionsCmd(),
		a.dumpCmd(),
		a.probeCmd(),
		a.exportsCmd(),
		a.resolveCmd(),
	)
	return cmd
}
