package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"golf-caddy/internal/domain"
)

var (
	suggestCarry  int
	suggestScore  int
	suggestCourse string
	suggestJSON   bool
	serveAddr     string
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List the course catalog (favorites marked with ★)",
	RunE: func(cmd *cobra.Command, args []string) error {
		var favorites []string
		if user, ok := caddyApp.Accounts.CurrentUser(); ok && user.Preferences != nil {
			favorites = user.Preferences.FavoriteCourses
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderCourses(caddyApp.Caddy.CourseOptions(), caddyApp.Caddy.DefaultCourse(), favorites))
		return nil
	},
}

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Get a 14-club set and strategy for three play styles",
	Long: `Ask the model for a club set and course strategy.

Flags not given fall back to your saved preferences, then to 200 yards,
score 100 and the first catalog course. With an active session the metrics
used are saved as your new preferences.`,
	Example: `  caddy suggest --carry 240 --score 88 --course "廣野ゴルフ倶楽部"
  caddy suggest --course "Unknown Course Type"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		metrics := caddyApp.Caddy.DefaultMetrics()
		if cmd.Flags().Changed("carry") {
			metrics.DriverCarryDistance = suggestCarry
		}
		if cmd.Flags().Changed("score") {
			metrics.AverageScore = suggestScore
		}
		course := suggestCourse
		if strings.TrimSpace(course) == "" {
			course = caddyApp.Caddy.DefaultCourse()
		}

		out := cmd.OutOrStdout()
		if !suggestJSON {
			fmt.Fprintln(out, mutedStyle.Render("AIキャディが提案を作成中..."))
		}
		resp, err := caddyApp.Caddy.FetchSuggestion(cmd.Context(), metrics, course)
		if err != nil {
			return err
		}

		if suggestJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		}
		fmt.Fprintln(out, renderSuggestion(resp, course, metrics))
		return nil
	},
}

var nearbyCmd = &cobra.Command{
	Use:   "nearby <location>",
	Short: "Search golf courses near a location",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		location := strings.Join(args, " ")
		courses, err := caddyApp.Caddy.FetchNearbyCourses(cmd.Context(), location)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderNearby(location, courses))
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local HTTP API for a browser front end",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serveAddr
		if addr == "" {
			addr = configFrom(cmd.Context()).HTTPAddr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		server := &http.Server{
			Addr:              addr,
			Handler:           caddyApp.Router(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(shutdownCtx)
		}()

		caddyApp.Logger.Info("starting server", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	suggestCmd.Flags().IntVar(&suggestCarry, "carry", domain.DefaultDriverCarryDistance, "driver carry distance in yards")
	suggestCmd.Flags().IntVar(&suggestScore, "score", domain.DefaultAverageScore, "average score")
	suggestCmd.Flags().StringVarP(&suggestCourse, "course", "c", "", "course name (catalog value or any name)")
	suggestCmd.Flags().BoolVar(&suggestJSON, "json", false, "print the validated JSON response")

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default HTTP_ADDR)")
}
