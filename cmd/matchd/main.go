package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"matchd/internal/config"
	"matchd/internal/engine"
	"matchd/internal/httpapi"
	"matchd/internal/hub"
	"matchd/internal/store"
)

func main() {
	// Flags with environment variable defaults
	defaultAddr := ":8000"
	if v := os.Getenv("MATCHD_ADDR"); v != "" {
		defaultAddr = v
	}
	addr := flag.String("addr", defaultAddr, "HTTP listen address, e.g. :8000")
	configPath := flag.String("config", os.Getenv("MATCHD_CONFIG"), "Path to config file (.toml/.yaml/.json)")
	corsEnabled := flag.Bool("cors-enabled", true, "Enable CORS for the browser frontend")
	seed := flag.Bool("seed", false, "Create the sample fixtures at startup")
	flag.Parse()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	var cfg config.Config
	if *configPath != "" {
		p, err := config.ExpandHome(*configPath)
		if err != nil {
			log.Fatalf("resolve config path: %v", err)
		}
		if !config.PathExists(p) {
			log.Fatalf("config file not found: %s", p)
		}
		cfg, err = config.Load(p)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
	}
	if cfg.Addr == "" {
		cfg.Addr = *addr
	}

	st := store.New()
	eng := engine.New(engine.Config{
		Store:            st,
		MatchDuration:    seconds(cfg.MatchDurationSec),
		MinEventInterval: seconds(cfg.MinEventIntervalSec),
		MaxEventInterval: seconds(cfg.MaxEventIntervalSec),
		Players:          cfg.Players,
		CardTypes:        cfg.CardTypes,
		FoulTypes:        cfg.FoulTypes,
		Fixtures:         fixtures(cfg.SeedFixtures),
		Logger:           &logger,
	})
	h := hub.New(st, logger)
	eng.SetPublisher(h)
	if *seed {
		if _, err := eng.SeedMatches(); err != nil {
			log.Fatalf("seed matches: %v", err)
		}
	}

	httpapi.SetLogger(logger)
	httpapi.SetCORSOptions(*corsEnabled, cfg.CORSOrigins)
	mux := httpapi.NewMux(eng, h)
	srv := &http.Server{Addr: cfg.Addr, Handler: mux}

	go func() {
		logger.Info().Str("addr", cfg.Addr).Msg("matchd listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown")
	}
	eng.Close()
	h.Close()
}

// seconds converts a config value to a duration; 0 keeps the engine default.
func seconds(n int) time.Duration {
	if n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}

func fixtures(fs []config.Fixture) []engine.Fixture {
	out := make([]engine.Fixture, 0, len(fs))
	for _, f := range fs {
		out = append(out, engine.Fixture{TeamA: f.TeamA, TeamB: f.TeamB})
	}
	return out
}
