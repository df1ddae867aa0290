package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"nutri-admin/cmd/panelctl/ui"
	"nutri-admin/internal/adapters/dashboardapi"
	filestore "nutri-admin/internal/adapters/storage/file"
	"nutri-admin/internal/domain/session"
	"nutri-admin/internal/platform/config"
	"nutri-admin/internal/platform/httpclient"
	"nutri-admin/internal/platform/logger"
	"nutri-admin/internal/platform/otel"
)

// La CLI guarda una sola sesión por archivo.
const sessionScope = "default"

// cliApp es el estado compartido por los comandos. Lo arma PersistentPreRunE.
type cliApp struct {
	cfg   config.CLI
	log   logger.Logger
	api   *dashboardapi.Client
	nav   *ui.Navigator
	store *session.Store
	now   func() time.Time

	shutdownTracing func(context.Context) error
}

type rootFlags struct {
	apiURL      string
	timeout     time.Duration
	sessionFile string
	configPath  string
	verbose     bool
}

func newRootCmd() *cobra.Command {
	var (
		flags rootFlags
		app   = &cliApp{now: time.Now}
	)

	root := &cobra.Command{
		Use:   "panelctl",
		Short: "Cliente de terminal del panel de administración",
		Long: `panelctl habla con el mismo backend que el panel web.

Inicie sesión con 'panelctl login' y después liste usuarios o niños,
o abra la interfaz interactiva con 'panelctl tui'.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.setup(cmd, flags)
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if app.shutdownTracing != nil {
				ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Second)
				if err := app.shutdownTracing(ctx); err != nil && app.log != nil {
					app.log.Warn("tracing shutdown", map[string]any{"error": err.Error()})
				}
				cancel()
			}
			if app.log != nil {
				_ = app.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&flags.apiURL, "api-url", "", "URL base del backend (API_BASE_URL)")
	root.PersistentFlags().DurationVar(&flags.timeout, "timeout", 0, "timeout de cada request (API_TIMEOUT)")
	root.PersistentFlags().StringVar(&flags.sessionFile, "session-file", "", "archivo donde se guarda la sesión")
	root.PersistentFlags().StringVar(&flags.configPath, "config", defaultConfigPath(), "archivo YAML de configuración")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "logs de debug")

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newUsersCmd(app),
		newChildrenCmd(app),
		newTUICmd(app),
	)
	return root
}

func (a *cliApp) setup(cmd *cobra.Command, flags rootFlags) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.LoadCLI(flags.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("api-url") {
		cfg.API.BaseURL = flags.apiURL
	}
	if cmd.Flags().Changed("timeout") {
		cfg.API.Timeout = flags.timeout
	}
	if cmd.Flags().Changed("session-file") {
		cfg.SessionFile = flags.sessionFile
	}
	if cfg.API.Timeout <= 0 {
		cfg.API.Timeout = httpclient.DefaultTimeout
	}
	if cfg.SessionFile == "" {
		cfg.SessionFile = defaultSessionFile()
	}

	level := logger.ParseLevel(cfg.LogLevel)
	if flags.verbose {
		level = logger.Debug
	}
	a.log = logger.New(logger.Options{
		Level:  level,
		Format: logger.FormatText,
		App:    "panelctl",
		Output: cmd.ErrOrStderr(),
	})

	a.shutdownTracing, err = otel.Setup(cmd.Context(), otel.Options{
		ServiceName: "panelctl",
		Endpoint:    cfg.Tracing.Endpoint,
		Disabled:    cfg.Tracing.Disabled,
	})
	if err != nil {
		return fmt.Errorf("tracing: %w", err)
	}

	hc, err := httpclient.NewWithBaseURL(cfg.API.BaseURL, cfg.API.Timeout)
	if err != nil {
		return fmt.Errorf("api client: %w", err)
	}

	a.cfg = cfg
	a.api = dashboardapi.NewClient(hc)
	a.nav = ui.NewNavigator()
	a.store = session.NewStore(filestore.NewSessionBackend(cfg.SessionFile, a.log).Scope(sessionScope), a.nav, a.log)

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()
	// Sin sesión legible se sigue igual: login debe poder correr.
	if err := a.store.Hydrate(ctx); err != nil {
		a.log.Warn("session not restored", map[string]any{"error": err.Error()})
	}
	a.log.Debug("cli ready", map[string]any{
		"api_base_url": cfg.API.BaseURL,
		"session_file": cfg.SessionFile,
	})
	return nil
}

// requireSession falla con un mensaje útil si no hay sesión de admin.
func (a *cliApp) requireSession() error {
	if !a.store.IsAuthenticated() {
		return fmt.Errorf("no hay una sesión activa: ejecute 'panelctl login'")
	}
	return nil
}

func (a *cliApp) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), a.cfg.API.Timeout)
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "panelctl", "config.yaml")
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".panelctl", "session.json")
	}
	return filepath.Join(dir, "panelctl", "session.json")
}
