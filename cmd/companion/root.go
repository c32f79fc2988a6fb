package main

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jask/scenecompanion/internal/catalog"
	"github.com/jask/scenecompanion/internal/config"
	"github.com/jask/scenecompanion/internal/logging"
	"github.com/jask/scenecompanion/internal/navigator"
	"github.com/jask/scenecompanion/internal/player"
	"github.com/jask/scenecompanion/internal/tui"
)

// globals carries the viper instance and --config path shared by subcommands.
type globals struct {
	v          *viper.Viper
	configPath string
}

func (g *globals) load() (config.Config, error) {
	return config.Load(g.v, g.configPath)
}

func newRootCmd() *cobra.Command {
	g := &globals{v: config.New()}

	root := &cobra.Command{
		Use:           "companion",
		Short:         "Scene companion overlay for a paused video",
		Long:          "Plays a simulated scene and opens the Scene Companion whenever playback is paused.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			return runPlayer(cfg)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	pf.String("schema", "", "catalog schema: rich or legacy")
	pf.String("catalog", "", "external catalog TOML file")
	pf.String("voice-on-reopen", "", "voice mode when the companion reopens: reset or retain")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	_ = g.v.BindPFlag("catalog.schema", pf.Lookup("schema"))
	_ = g.v.BindPFlag("catalog.path", pf.Lookup("catalog"))
	_ = g.v.BindPFlag("companion.voice_on_reopen", pf.Lookup("voice-on-reopen"))
	_ = g.v.BindPFlag("log.level", pf.Lookup("log-level"))

	root.AddCommand(newCatalogCmd(g), newConfigCmd(g))
	return root
}

func runPlayer(cfg config.Config) error {
	logger, closer, err := logging.NewFromConfig(cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()

	cat, err := loadCatalog(cfg.Catalog)
	if err != nil {
		return err
	}
	policy, err := navigator.ParseVoicePolicy(cfg.Companion.VoiceOnReopen)
	if err != nil {
		return err
	}

	nav := navigator.New(cat, navigator.WithVoicePolicy(policy), navigator.WithLogger(logger))
	nav.Observe(func(st navigator.State) {
		if !st.Visible {
			logger.Info("companion hidden", "voice", st.VoiceMode)
		}
	})
	p := player.New(cfg.Player.Title, cfg.Player.Duration)
	p.Subscribe(nav)

	logger.Info("starting player",
		slog.String("title", cfg.Player.Title),
		slog.String("schema", string(cat.Schema())),
		slog.Int("topics", cat.Len()),
		slog.String("voice_on_reopen", string(policy)),
	)

	app := tui.New(nav, p, tui.Options{Tick: cfg.Player.Tick, Keys: cfg.Keys, Logger: logger})
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

// loadCatalog prefers an external file over the embedded catalog for the
// configured schema.
func loadCatalog(cfg config.CatalogConfig) (*catalog.Catalog, error) {
	if cfg.Path != "" {
		return catalog.LoadFile(cfg.Path)
	}
	schema, ok := catalog.ParseSchema(cfg.Schema)
	if !ok {
		return nil, fmt.Errorf("catalog schema: unsupported value %q", cfg.Schema)
	}
	return catalog.Load(schema)
}
