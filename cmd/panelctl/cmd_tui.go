package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"nutri-admin/cmd/panelctl/ui"
)

func newTUICmd(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Abre la interfaz interactiva",
		RunE: func(cmd *cobra.Command, _ []string) error {
			model := ui.New(ui.Deps{
				Gateway:  app.api,
				Store:    app.store,
				Nav:      app.nav,
				Users:    app.api.Users(app.store),
				Children: app.api.Children(app.store),
				Timeout:  app.cfg.API.Timeout,
				Logger:   app.log,
				Now:      app.now,
			})
			_, err := tea.NewProgram(model,
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			).Run()
			return err
		},
	}
}
