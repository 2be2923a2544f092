// starfall is a small platformer: run, jump, collect the stars and keep
// away from the bombs.
//
// Usage:
//
//	starfall                 - Play
//	starfall manifest        - Print the validated asset manifest
//
// Flags:
//
//	--config <path>  - Config file (default: search ~/.starfall, ./configs)
//	--debug          - Debug logging and FPS overlay
//	--seed <value>   - RNG seed for reproducible hazards (0 = random)
//	--watch          - Rebuild the scene when files under prefabs/ change
//	--touch          - Force the on-screen touch buttons on
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/starfall/config"
	"github.com/spf13/cobra"
)

var (
	flagConfig string
	flagDebug  bool
	flagSeed   uint64
	flagWatch  bool
	flagTouch  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "starfall",
	Short:        "Collect the stars, dodge the bombs",
	SilenceUsage: true,
	RunE:         runGame,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to game config YAML")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging and overlay")
	rootCmd.Flags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random)")
	rootCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload prefabs when they change on disk")
	rootCmd.Flags().BoolVar(&flagTouch, "touch", false, "Show touch controls regardless of config")

	rootCmd.AddCommand(manifestCmd)
}

func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "starfall",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func runGame(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagTouch {
		cfg.Input.Touch = true
	}

	game, err := NewGame(GameOptions{
		Config: cfg,
		Logger: logger,
		Seed:   flagSeed,
		Watch:  flagWatch,
		Debug:  flagDebug,
	})
	if err != nil {
		return err
	}
	defer game.Close()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowSizeLimits(cfg.Window.MinWidth, cfg.Window.MinHeight, -1, -1)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.Physics.TPS)

	logger.Info("starting", "width", cfg.Window.Width, "height", cfg.Window.Height, "touch", cfg.Input.Touch)
	return ebiten.RunGame(game)
}
