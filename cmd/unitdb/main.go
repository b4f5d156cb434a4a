// Command unitdb loads a JSON lines file into an in-memory unitdb store and
// queries it, either once from the command line or from an interactive
// shell.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vinicius-lino-figueiredo/unitdb"
	"github.com/vinicius-lino-figueiredo/unitdb/adapter/storage"
	"github.com/vinicius-lino-figueiredo/unitdb/domain"
	"github.com/vinicius-lino-figueiredo/unitdb/internal/config"
	"github.com/vinicius-lino-figueiredo/unitdb/internal/shell"
)

// app holds what every command needs once the root command ran its setup.
type app struct {
	v          *viper.Viper
	configFile string
	cfg        config.Config
	storage    domain.Storage
	shell      *shell.Shell
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), storage: storage.NewStorage()}

	root := &cobra.Command{
		Use:           "unitdb",
		Short:         "Query JSON lines files with an embedded document store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (json, yaml or toml)")
	flags.StringP(config.KeyFile, "f", "", "JSON lines file holding the documents")
	flags.String(config.KeyLogLevel, "warn", "log level: debug, info, warn or error")
	flags.String(config.KeyLogFormat, "text", "log format: text or json")
	flags.Int64(config.KeyLimit, 0, "default query limit")
	flags.String(config.KeyHistory, "", "shell history file")

	for _, key := range []string{
		config.KeyFile,
		config.KeyLogLevel,
		config.KeyLogFormat,
		config.KeyLimit,
		config.KeyHistory,
	} {
		if err := a.v.BindPFlag(key, flags.Lookup(key)); err != nil {
			panic(err)
		}
	}

	root.AddCommand(
		newQueryCmd(a),
		newCountCmd(a),
		newShellCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	log, err := cfg.Logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	db := unitdb.NewDB(unitdb.WithLogger(log))
	a.shell = shell.NewShell(db,
		shell.WithFile(cfg.File),
		shell.WithLimit(cfg.Limit),
		shell.WithLogger(log),
		shell.WithStorage(a.storage),
	)

	_, err = a.shell.Load(cmd.Context())
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
