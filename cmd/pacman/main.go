package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"

	"github.com/mitchelldurbincs/MultiAgentSearch/internal/agents"
	"github.com/mitchelldurbincs/MultiAgentSearch/internal/config"
	"github.com/mitchelldurbincs/MultiAgentSearch/internal/game"
	"github.com/mitchelldurbincs/MultiAgentSearch/internal/game/events"
	"github.com/mitchelldurbincs/MultiAgentSearch/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/MultiAgentSearch/internal/game/mapgen"
	"github.com/mitchelldurbincs/MultiAgentSearch/internal/search"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	env := flag.String("env", "", "Environment overlay (loads config.<env>.yaml)")
	agent := flag.String("agent", "", "Pacman agent: minimax, alphabeta, expectimax, reflex (empty to use config default)")
	depth := flag.Int("depth", -1, "Search depth in full rounds (-1 to use config default)")
	eval := flag.String("eval", "", "Leaf evaluator: score, better (empty to use config default)")
	layout := flag.String("layout", "", "Layout file (empty to use config default)")
	ghost := flag.String("ghost", "", "Ghost agent: random, directional (empty to use config default)")
	games := flag.Int("games", -1, "Number of games to play (-1 to use config default)")
	seed := flag.Int64("seed", -1, "Random seed, 0 for time based (-1 to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	watch := flag.Bool("watch", false, "Reload the config file between games when it changes")
	flag.Parse()

	// Initialize configuration
	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(*env); err != nil {
		log.Fatal().Err(err).Msg("Failed to load environment config")
	}

	// Flags override config values
	overrides := map[string]interface{}{}
	if *agent != "" {
		overrides["search.algorithm"] = *agent
	}
	if *depth != -1 {
		overrides["search.depth"] = *depth
	}
	if *eval != "" {
		overrides["search.evaluator"] = *eval
	}
	if *layout != "" {
		overrides["game.layout"] = *layout
	}
	if *ghost != "" {
		overrides["game.ghost"] = *ghost
	}
	if *games != -1 {
		overrides["game.games"] = *games
	}
	if *seed != -1 {
		overrides["game.seed"] = *seed
	}
	if *logLevel != "" {
		overrides["logging.level"] = *logLevel
	}
	for key, value := range overrides {
		if err := config.Set(key, value); err != nil {
			log.Fatal().Err(err).Msg("Invalid command line override")
		}
	}
	if err := config.Validate(config.Get()); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	cfg := config.Get()
	setupLogging(cfg.Logging.Level, cfg.Logging.Format)

	if *watch {
		stop, err := config.WatchConfig(func(err error) {
			if err != nil {
				log.Warn().Err(err).Msg("Ignoring invalid config change")
				return
			}
			log.Info().Str("file", config.ConfigFilePath()).Msg("Config reloaded")
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to watch config")
		}
		defer stop()
	}

	// Stop between games (or between moves) on a signal
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	summary, err := run(ctx, config.Get, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Run failed")
	}

	fmt.Println(summary)
}

// Summary aggregates the outcomes of a run
type Summary struct {
	Games     int
	Wins      int
	MeanScore float64
	StdScore  float64
	Outcomes  []game.Outcome
}

func (s Summary) String() string {
	return fmt.Sprintf("Games: %d  Wins: %d (%.0f%%)  Average score: %.2f (sd %.2f)",
		s.Games, s.Wins, 100*float64(s.Wins)/float64(max(s.Games, 1)), s.MeanScore, s.StdScore)
}

// run plays Game.Games games in a row and summarizes them. The number of
// games and the seed come from the first snapshot; every game then takes a
// fresh snapshot from current so hot reloads take effect between games.
func run(ctx context.Context, current func() *config.Config, logger zerolog.Logger) (Summary, error) {
	cfg := current()
	seed := uint64(cfg.Game.Seed)
	if cfg.Game.Seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	logger.Info().Uint64("seed", seed).Int("games", cfg.Game.Games).Msg("Starting run")
	rng := rand.New(rand.NewSource(seed))

	bus := events.NewEventBus()
	stats := subscribers.NewStatsSubscriber("stats")
	bus.Subscribe(stats)
	bus.Subscribe(subscribers.NewLoggerSubscriber("event_logger", logger, zerolog.DebugLevel))

	var outcomes []game.Outcome
	games := cfg.Game.Games
	for i := 0; i < games; i++ {
		if err := ctx.Err(); err != nil {
			logger.Warn().Int("played", i).Msg("Run interrupted")
			break
		}

		outcome, err := playGame(ctx, current(), rng, bus, logger)
		if errors.Is(err, context.Canceled) {
			logger.Warn().Int("played", i).Msg("Run interrupted mid game")
			break
		}
		if err != nil {
			return Summary{}, fmt.Errorf("game %d: %w", i+1, err)
		}
		outcomes = append(outcomes, outcome)
		logger.Info().
			Int("game", i+1).
			Str("game_id", outcome.GameID).
			Bool("win", outcome.Win).
			Int("score", outcome.Score).
			Int("moves", outcome.Moves).
			Msg("Game finished")
	}

	summary := Summary{Games: len(outcomes), Wins: stats.Wins(), Outcomes: outcomes}
	if scores := stats.Scores(); len(scores) > 0 {
		summary.MeanScore, summary.StdScore = stat.MeanStdDev(scores, nil)
		if len(scores) == 1 {
			summary.StdScore = 0
		}
	}
	return summary, nil
}

func playGame(ctx context.Context, cfg *config.Config, rng *rand.Rand, bus events.Bus, logger zerolog.Logger) (game.Outcome, error) {
	layout, err := loadLayout(cfg, rng)
	if err != nil {
		return game.Outcome{}, err
	}

	pacman, err := agents.NewPacmanWithConfig(cfg.PacmanConfig(),
		search.WithLogger(logger),
		search.WithRand(rand.New(rand.NewSource(rng.Uint64()))),
	)
	if err != nil {
		return game.Outcome{}, err
	}
	ghosts, err := agents.NewGhosts(cfg.Game.Ghost, len(layout.GhostStarts), rng)
	if err != nil {
		return game.Outcome{}, err
	}

	engine, err := game.NewEngine(game.GameConfig{
		Layout:   layout,
		Rules:    cfg.GameRules(),
		Agents:   append([]game.Agent{pacman}, ghosts...),
		MaxMoves: cfg.Game.MaxMoves,
		EventBus: bus,
		Logger:   logger,
	})
	if err != nil {
		return game.Outcome{}, err
	}
	logger.Debug().Str("game_id", engine.GameID()).Msgf("Initial layout:\n%s", layout)

	return engine.Run(ctx)
}

func loadLayout(cfg *config.Config, rng *rand.Rand) (*game.Layout, error) {
	if cfg.Game.Layout != "" {
		return game.LoadLayout(cfg.Game.Layout)
	}
	gen := mapgen.NewGenerator(cfg.MapgenConfig(), rng)
	return gen.GenerateLayout()
}

func setupLogging(level, format string) {
	// Parse log level
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	if format == "json" {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		// Pretty console output for development
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
}
