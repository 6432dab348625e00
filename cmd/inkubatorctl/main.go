package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"inkubator_backend/internals/configs"
	"inkubator_backend/internals/portal/apiclient"
	"inkubator_backend/internals/portal/localstore"
	"inkubator_backend/internals/portal/session"
)

// app dependensi bersama semua subcommand, dibangun di PersistentPreRunE.
type app struct {
	log    *zap.Logger
	kv     localstore.KV
	api    *apiclient.Client
	tokens *session.TokenProvider
	closer func()
}

var deps = &app{}

var rootCmd = &cobra.Command{
	Use:           "inkubatorctl",
	Short:         "Portal CLI Inkubator Bisnis",
	Long:          `Command-line portal untuk tenant (registrasi startup) dan admin (review registrasi).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return deps.init(cmd.Context())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if deps.closer != nil {
			deps.closer()
		}
	},
}

func (a *app) init(ctx context.Context) error {
	configs.LoadEnv()

	log, err := configs.NewLogger(configs.GetEnv("CLI_LOG_LEVEL", "warn"), "console", "inkubatorctl")
	if err != nil {
		log = zap.NewNop()
	}
	a.log = log

	// PORTAL_STORE=redis → state di Redis, selain itu file di PORTAL_STATE_DIR.
	if configs.GetEnv("PORTAL_STORE", "file") == "redis" {
		kv, err := localstore.NewRedisKVFromEnv(ctx)
		if err != nil {
			return err
		}
		a.kv = kv
		a.closer = func() { _ = kv.Close() }
	} else {
		kv, err := localstore.NewFileKV(stateDir())
		if err != nil {
			return fmt.Errorf("state dir: %w", err)
		}
		a.kv = kv
	}

	a.api = apiclient.NewFromEnv(log)
	a.tokens = session.NewTokenProvider(a.kv, session.NewFirebaseRefresherFromEnv(), log)
	return nil
}

func stateDir() string {
	if dir := configs.GetEnv("PORTAL_STATE_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".inkubator"
	}
	return filepath.Join(home, ".inkubator")
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, statusCmd, draftCmd, registerCmd, adminCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "❌", cliMessage(err))
		os.Exit(1)
	}
}
