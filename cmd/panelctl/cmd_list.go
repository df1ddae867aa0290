package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"nutri-admin/internal/domain/children"
	"nutri-admin/internal/domain/users"
	"nutri-admin/internal/listing"
	"nutri-admin/internal/platform/httpclient"
	"nutri-admin/internal/ports/dashboard"
)

var errSessionExpired = errors.New("la sesión expiró: ejecute 'panelctl login'")

type listFlags struct {
	page   int
	search string
}

func (f *listFlags) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.page, "page", 1, "página (desde 1)")
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "búsqueda por nombre o email")
}

func newUsersCmd(app *cliApp) *cobra.Command {
	var flags listFlags
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Lista usuarios",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.requireSession(); err != nil {
				return err
			}
			st, err := fetchPage(cmd, app, app.api.Users(app.store), users.Key, "No se pudieron cargar los usuarios.", flags)
			if err != nil {
				return err
			}
			renderUsers(cmd.OutOrStdout(), st)
			return nil
		},
	}
	flags.bind(cmd)
	return cmd
}

func newChildrenCmd(app *cliApp) *cobra.Command {
	var flags listFlags
	cmd := &cobra.Command{
		Use:   "children",
		Short: "Lista niños",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.requireSession(); err != nil {
				return err
			}
			st, err := fetchPage(cmd, app, app.api.Children(app.store), children.Key, "No se pudieron cargar los niños.", flags)
			if err != nil {
				return err
			}
			renderChildren(cmd.OutOrStdout(), st, app.now())
			return nil
		},
	}
	flags.bind(cmd)
	return cmd
}

func fetchPage[T any](cmd *cobra.Command, app *cliApp, l dashboard.Lister[T], key func(T) string, errMsg string, flags listFlags) (listing.State[T], error) {
	ctrl := listing.New(l, listing.Options[T]{Key: key, ErrorMessage: errMsg, Logger: app.log})
	defer ctrl.Close()

	ctx, cancel := app.context(cmd)
	defer cancel()

	if err := ctrl.Fetch(ctx, flags.page, flags.search); err != nil {
		if httpclient.IsUnauthorized(err) {
			return listing.State[T]{}, errSessionExpired
		}
		return listing.State[T]{}, errors.New(ctrl.State().Err)
	}
	return ctrl.State(), nil
}

func newTable(headers ...string) *table.Table {
	head := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return head
			}
			return cell
		})
}

func footer[T any](w io.Writer, st listing.State[T]) {
	fmt.Fprintf(w, "Página %d de %d · %d registros\n", st.Page, st.TotalPages, st.Total)
}

func renderUsers(w io.Writer, st listing.State[users.User]) {
	switch st.Empty() {
	case listing.EmptyNoRecords:
		fmt.Fprintln(w, "Aún no hay usuarios registrados.")
		return
	case listing.EmptyNoResults:
		fmt.Fprintf(w, "No se encontraron usuarios para %q.\n", st.Search)
		return
	}

	t := newTable("ID", "Nombre", "Email", "Rol", "Creado")
	for _, u := range st.Items {
		created := "—"
		if !u.CreatedAt.IsZero() {
			created = u.CreatedAt.Format("02/01/2006")
		}
		t.Row(u.ID.String(), u.Name, u.Email, u.Role.Label(), created)
	}
	fmt.Fprintln(w, t.Render())
	footer(w, st)
}

func renderChildren(w io.Writer, st listing.State[children.Child], now time.Time) {
	switch st.Empty() {
	case listing.EmptyNoRecords:
		fmt.Fprintln(w, "Aún no hay niños registrados.")
		return
	case listing.EmptyNoResults:
		fmt.Fprintf(w, "No se encontraron niños para %q.\n", st.Search)
		return
	}

	t := newTable("ID", "Nombre", "Edad", "Género", "Peso", "Talla", "Madre")
	for _, c := range st.Items {
		t.Row(
			c.ID.String(),
			c.Name,
			children.AgeLabel(c.BirthDate.Time, now),
			children.GenderLabel(c.Gender),
			children.Measure(c.Weight, "kg"),
			children.Measure(c.Height, "cm"),
			children.OrDash(c.Mother.Name),
		)
	}
	fmt.Fprintln(w, t.Render())
	footer(w, st)
}
