package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"golf-caddy/internal/domain"
	"golf-caddy/internal/service"
)

var (
	accountEmail string
	accountName  string
	prefsCarry   int
	prefsScore   int
	prefsFavs    []string
	prefsClear   bool
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a local account and log in",
	RunE: func(cmd *cobra.Command, args []string) error {
		reader := bufio.NewReader(cmd.InOrStdin())
		out := cmd.OutOrStdout()

		email, err := valueOrPrompt(reader, out, accountEmail, "Email")
		if err != nil {
			return err
		}
		name, err := valueOrPrompt(reader, out, accountName, "Name")
		if err != nil {
			return err
		}
		password, err := promptPassword(reader, out, "Password (6+ characters)")
		if err != nil {
			return err
		}

		user, err := caddyApp.Accounts.Register(cmd.Context(), service.RegisterInput{
			Email:    email,
			Password: password,
			Name:     name,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("ようこそ、%sさん", user.Name)))
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with email and password",
	RunE: func(cmd *cobra.Command, args []string) error {
		reader := bufio.NewReader(cmd.InOrStdin())
		out := cmd.OutOrStdout()

		email, err := valueOrPrompt(reader, out, accountEmail, "Email")
		if err != nil {
			return err
		}
		password, err := promptPassword(reader, out, "Password")
		if err != nil {
			return err
		}

		user, err := caddyApp.Accounts.Login(cmd.Context(), email, password)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("ログインしました: %s", user.Name)))
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the active session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := caddyApp.Accounts.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "ログアウトしました。")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user and preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, ok := caddyApp.Accounts.CurrentUser()
		if !ok {
			return domain.NewError(domain.KindAuth, "whoami", domain.MsgLoginRequired)
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderUser(user))
		return nil
	},
}

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Update stored preferences (shallow merge)",
	Example: `  caddy prefs --carry 230 --score 92
  caddy prefs --favorite "廣野ゴルフ倶楽部" --favorite "鳴尾ゴルフ倶楽部"
  caddy prefs --clear-favorites`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var patch domain.PreferencesPatch
		flags := cmd.Flags()
		if flags.Changed("carry") {
			patch.DriverCarryDistance = &prefsCarry
		}
		if flags.Changed("score") {
			patch.AverageScore = &prefsScore
		}
		if flags.Changed("favorite") || prefsClear {
			favs := cleanList(prefsFavs)
			if prefsClear {
				favs = []string{}
			}
			patch.FavoriteCourses = &favs
		}
		if patch.IsEmpty() {
			return cmd.Help()
		}

		user, err := caddyApp.Accounts.UpdatePreferences(cmd.Context(), patch)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderUser(user))
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{registerCmd, loginCmd} {
		c.Flags().StringVarP(&accountEmail, "email", "e", "", "account email")
	}
	registerCmd.Flags().StringVarP(&accountName, "name", "n", "", "display name")

	prefsCmd.Flags().IntVar(&prefsCarry, "carry", 0, "driver carry distance in yards")
	prefsCmd.Flags().IntVar(&prefsScore, "score", 0, "average score")
	prefsCmd.Flags().StringArrayVar(&prefsFavs, "favorite", nil, "favorite course (repeatable, replaces the list)")
	prefsCmd.Flags().BoolVar(&prefsClear, "clear-favorites", false, "remove all favorite courses")
}

func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
