package main

import (
	"flag"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/jacksimmons/morse-vs-horse/assets"
	"github.com/jacksimmons/morse-vs-horse/internal/audio"
	"github.com/jacksimmons/morse-vs-horse/internal/config"
	"github.com/jacksimmons/morse-vs-horse/internal/game"
	"github.com/jacksimmons/morse-vs-horse/internal/gamescanner"
	"github.com/jacksimmons/morse-vs-horse/internal/logging"
	ebitenrender "github.com/jacksimmons/morse-vs-horse/internal/render/ebiten"
	"github.com/jacksimmons/morse-vs-horse/internal/save"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "config.json", "Path to the JSON config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		log.Error().Err(err).Msg("morse vs horse exited with an error")
		os.Exit(1)
	}
}

// run starts the game and returns once the window closes. Deferred
// cleanup always runs before main exits.
func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	logging.Setup(cfg.LogLevel, cfg.LogPretty)

	store, err := save.Open(cfg.SaveBackend, cfg.SavePath)
	if err != nil {
		return fmt.Errorf("failed to open save store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close save store")
		}
	}()

	data, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load save: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	var tone audio.Tone
	if bt, err := audio.NewBeepTone(data.SFXVolume); err != nil {
		log.Warn().Err(err).Msg("audio unavailable; playing silently")
		tone = &audio.Silent{}
	} else {
		tone = bt
	}
	defer tone.Close()

	// Initialize the renderer backend (ebiten)
	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	engine := ebitenrender.NewEngine()

	manager := game.NewManager(cfg, data, store, tone, mapSource(cfg.DataDir), renderer, inputMgr, rng)
	manager.OnFullscreen = engine.SetFullscreen

	// Set up the window
	width, height := data.Resolution.Width, data.Resolution.Height
	if width <= 0 || height <= 0 {
		width, height = cfg.ScreenWidth, cfg.ScreenHeight
	}
	engine.SetWindowSize(width, height)
	engine.SetWindowTitle("Morse vs Horse")
	engine.SetWindowResizable(true)
	engine.SetFullscreen(data.Fullscreen)

	log.Info().Int64("seed", seed).Str("save", cfg.SavePath).Msg("starting game")
	return finish(store, data, engine.RunGame(manager))
}

// finish writes the save whether or not the game loop failed
func finish(store save.Store, data *save.Data, runErr error) error {
	if err := store.Save(data); err != nil {
		log.Error().Err(err).Msg("failed to write save on exit")
	}
	if runErr != nil {
		return fmt.Errorf("game loop: %w", runErr)
	}
	return nil
}

// mapSource serves maps from dataDir, falling back to the embedded maps
// for any index the data directory does not provide
func mapSource(dataDir string) game.MapSource {
	maps, err := gamescanner.ScanDataDirectory(dataDir)
	if err != nil {
		log.Info().Err(err).Msg("no data directory; using embedded maps")
	}
	for _, m := range maps {
		log.Info().Str("map", m.Name).Msg("found map")
	}

	dataFS := os.DirFS(dataDir)
	return func(i int) (fs.FS, string, error) {
		if entry, ok := gamescanner.Find(maps, i); ok {
			return dataFS, filepath.ToSlash(entry.Dir), nil
		}
		return assets.Maps, assets.MapDir(i % assets.MapCount), nil
	}
}
