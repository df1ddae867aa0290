package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"nutri-admin/internal/domain/session"
)

func newLoginCmd(app *cliApp) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Inicia sesión como administrador",
		Long: `Valida las credenciales contra el backend y guarda la sesión.

Solo los usuarios con rol admin pueden iniciar sesión. Si no se pasa
--password se toma de PANELCTL_PASSWORD o se lee de stdin.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				password = os.Getenv("PANELCTL_PASSWORD")
			}
			if password == "" {
				fmt.Fprint(cmd.ErrOrStderr(), "Contraseña: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("leer contraseña: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}

			ctx, cancel := app.context(cmd)
			defer cancel()

			token, user, err := app.api.Login(ctx, email, password)
			if err != nil {
				app.log.Debug("login failed", map[string]any{"error": err.Error()})
				return errors.New(session.LoginMessage(err))
			}
			if err := app.store.Login(ctx, token, user); err != nil {
				if errors.Is(err, session.ErrNotAuthorized) {
					return errors.New(session.LoginMessage(err))
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Sesión iniciada como %s <%s>\n", user.Name, user.Email)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "email del administrador")
	cmd.Flags().StringVarP(&password, "password", "p", "", "contraseña")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCmd(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Cierra la sesión guardada",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := app.context(cmd)
			defer cancel()
			if err := app.store.Logout(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Sesión cerrada.")
			return nil
		},
	}
}

func newWhoamiCmd(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Muestra el administrador de la sesión guardada",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.requireSession(); err != nil {
				return err
			}
			u := app.store.State().User
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> · %s\n", u.Name, u.Email, u.Role.Label())
			return nil
		},
	}
}
