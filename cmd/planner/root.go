package main

import (
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/nhle/process-planner/internal/app"
	"github.com/nhle/process-planner/internal/fixture"
	"github.com/nhle/process-planner/internal/logger"
	"github.com/nhle/process-planner/internal/model"
	"github.com/nhle/process-planner/internal/planner"
	"github.com/nhle/process-planner/internal/theme"
)

var (
	configPath string
	seedPath   string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:           "planner",
	Short:         "Terminal process planner",
	Long:          "Plan tasks, follow notifications, schedule meetings and chat with the team from the terminal.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", model.DefaultConfigPath(), "path to config file")
	rootCmd.PersistentFlags().StringVar(&seedPath, "seed", "", "seed workspace file (default: built-in demo team)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(notificationsCmd)
	rootCmd.AddCommand(agendaCmd)
	rootCmd.AddCommand(statsCmd)
}

// session is a loaded configuration and workspace.
type session struct {
	cfg *model.AppConfig
	ws  *planner.Workspace
	log zerolog.Logger
	out io.Closer
}

func (s *session) Close() {
	if s.out != nil {
		_ = s.out.Close()
	}
}

// openSession loads the config, opens the log file and seeds the workspace.
func openSession() (*session, error) {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if seedPath != "" {
		cfg.Seed.Path = seedPath
	}

	log, closer, err := logger.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	seed, err := fixture.Load(cfg.Seed.Path, now, nil)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}

	ws, err := planner.NewWorkspace(planner.Env{Log: log}, cfg, seed)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}

	log.Info().Str("config", configPath).Str("seed", cfg.Seed.Path).Msg("session opened")
	return &session{cfg: cfg, ws: ws, log: log, out: closer}, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	theme.Use(s.cfg.Display.Theme)

	root := app.New(app.Options{
		Workspace:  s.ws,
		Config:     s.cfg,
		ConfigPath: configPath,
		Log:        s.log,
	})

	final, err := tea.NewProgram(root, tea.WithAltScreen()).Run()
	if m, ok := final.(app.Model); ok {
		m.Shutdown()
	}
	if err != nil {
		return fmt.Errorf("running planner: %w", err)
	}
	return nil
}
