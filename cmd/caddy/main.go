package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"golf-caddy/internal/app"
	"golf-caddy/internal/config"
	"golf-caddy/internal/domain"
)

var (
	quiet    bool
	caddyApp *app.App
)

var rootCmd = &cobra.Command{
	Use:   "caddy",
	Short: "AI golf caddie: club selection and course strategy",
	Long: `caddy recommends a 14-club set and strategic advice for three play styles,
based on your driver carry distance, average score and the course you play.

Accounts and the active session are stored locally (STORE_DRIVER).`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupApp,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log errors")

	rootCmd.AddCommand(registerCmd, loginCmd, logoutCmd, whoamiCmd, prefsCmd)
	rootCmd.AddCommand(coursesCmd, suggestCmd, nearbyCmd, serveCmd)
}

func setupApp(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger(quiet)
	if err != nil {
		return err
	}

	caddyApp, err = app.New(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	cmd.SetContext(withConfig(cmd.Context(), cfg))
	return nil
}

func newLogger(quiet bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if quiet {
		cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}
	return cfg.Build()
}

type configKey struct{}

func withConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

func configFrom(ctx context.Context) *config.Config {
	cfg, _ := ctx.Value(configKey{}).(*config.Config)
	return cfg
}

func main() {
	err := rootCmd.ExecuteContext(context.Background())
	if caddyApp != nil {
		caddyApp.Close()
		_ = caddyApp.Logger.Sync()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(userFacingError(err)))
		os.Exit(1)
	}
}

// userFacingError usa el mensaje localizado para errores del dominio.
func userFacingError(err error) string {
	if domain.KindOf(err) == "" {
		return err.Error()
	}
	return domain.UserMessage(err)
}
