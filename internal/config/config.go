package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/mitchelldurbincs/MultiAgentSearch/internal/agents"
	"github.com/mitchelldurbincs/MultiAgentSearch/internal/game"
	"github.com/mitchelldurbincs/MultiAgentSearch/internal/game/mapgen"
	"github.com/mitchelldurbincs/MultiAgentSearch/internal/heuristics"
	"github.com/mitchelldurbincs/MultiAgentSearch/internal/search"
)

// Config holds all configuration for the application
type Config struct {
	Search     SearchConfig     `mapstructure:"search"`
	Heuristics HeuristicsConfig `mapstructure:"heuristics"`
	Rules      RulesConfig      `mapstructure:"rules"`
	Game       GameConfig       `mapstructure:"game"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// SearchConfig selects Pacman's policy
type SearchConfig struct {
	Algorithm string `mapstructure:"algorithm"`
	Depth     int    `mapstructure:"depth"`
	Evaluator string `mapstructure:"evaluator"`
}

// HeuristicsConfig holds evaluator weights
type HeuristicsConfig struct {
	Reflex ReflexConfig `mapstructure:"reflex"`
	Better BetterConfig `mapstructure:"better"`
}

// ReflexConfig holds the single-ply evaluator weights
type ReflexConfig struct {
	FoodBonus          float64 `mapstructure:"food_bonus"`
	GhostPenalty       float64 `mapstructure:"ghost_penalty"`
	GhostRadius        int     `mapstructure:"ghost_radius"`
	CollisionPenalty   float64 `mapstructure:"collision_penalty"`
	FoodDistanceWeight float64 `mapstructure:"food_distance_weight"`
}

// BetterConfig holds the leaf evaluator weights
type BetterConfig struct {
	FoodCountWeight    float64 `mapstructure:"food_count_weight"`
	FoodDistanceWeight float64 `mapstructure:"food_distance_weight"`
	CapsuleWeight      float64 `mapstructure:"capsule_weight"`
	GhostRadius        int     `mapstructure:"ghost_radius"`
	GhostPenalty       float64 `mapstructure:"ghost_penalty"`
	ScaredGhostWeight  float64 `mapstructure:"scared_ghost_weight"`
}

// RulesConfig holds scoring and timing rules
type RulesConfig struct {
	TimePenalty   int `mapstructure:"time_penalty"`
	FoodScore     int `mapstructure:"food_score"`
	WinPoints     int `mapstructure:"win_points"`
	LosePoints    int `mapstructure:"lose_points"`
	EatGhostScore int `mapstructure:"eat_ghost_score"`
	ScaredTime    int `mapstructure:"scared_time"`
}

// GameConfig holds match settings
type GameConfig struct {
	Layout   string    `mapstructure:"layout"` // layout file; empty means generate one
	Ghost    string    `mapstructure:"ghost"`  // ghost agent kind
	MaxMoves int       `mapstructure:"max_moves"`
	Games    int       `mapstructure:"games"`
	Seed     int64     `mapstructure:"seed"` // 0 seeds from the clock
	Map      MapConfig `mapstructure:"map"`
}

// MapConfig holds maze generation settings
type MapConfig struct {
	Width           int             `mapstructure:"width"`
	Height          int             `mapstructure:"height"`
	Ghosts          int             `mapstructure:"ghosts"`
	Capsules        int             `mapstructure:"capsules"`
	MinGhostSpacing int             `mapstructure:"min_ghost_spacing"`
	WallVeins       WallVeinsConfig `mapstructure:"wall_veins"`
}

// WallVeinsConfig holds wall vein generation settings
type WallVeinsConfig struct {
	Ratio          int     `mapstructure:"ratio"` // 1 vein per N cells
	MinLength      int     `mapstructure:"min_length"`
	MaxLengthRatio float64 `mapstructure:"max_length_ratio"`
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console or json
}

var (
	// mu guards the global config, the viper instance and the file names
	mu  sync.RWMutex
	cfg *Config
	v   *viper.Viper

	baseFile string // config file read by Init, empty when none was found
	envFile  string // overlay merged by LoadEnvironmentConfig
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Search
	v.SetDefault("search.algorithm", string(search.Minimax))
	v.SetDefault("search.depth", 2)
	v.SetDefault("search.evaluator", "score")

	// Heuristics
	reflex := heuristics.DefaultReflexConfig()
	v.SetDefault("heuristics.reflex.food_bonus", reflex.FoodBonus)
	v.SetDefault("heuristics.reflex.ghost_penalty", reflex.GhostPenalty)
	v.SetDefault("heuristics.reflex.ghost_radius", reflex.GhostRadius)
	v.SetDefault("heuristics.reflex.collision_penalty", reflex.CollisionPenalty)
	v.SetDefault("heuristics.reflex.food_distance_weight", reflex.FoodDistanceWeight)

	better := heuristics.DefaultBetterConfig()
	v.SetDefault("heuristics.better.food_count_weight", better.FoodCountWeight)
	v.SetDefault("heuristics.better.food_distance_weight", better.FoodDistanceWeight)
	v.SetDefault("heuristics.better.capsule_weight", better.CapsuleWeight)
	v.SetDefault("heuristics.better.ghost_radius", better.GhostRadius)
	v.SetDefault("heuristics.better.ghost_penalty", better.GhostPenalty)
	v.SetDefault("heuristics.better.scared_ghost_weight", better.ScaredGhostWeight)

	// Rules
	rules := game.DefaultRules()
	v.SetDefault("rules.time_penalty", rules.TimePenalty)
	v.SetDefault("rules.food_score", rules.FoodScore)
	v.SetDefault("rules.win_points", rules.WinPoints)
	v.SetDefault("rules.lose_points", rules.LosePoints)
	v.SetDefault("rules.eat_ghost_score", rules.EatGhostScore)
	v.SetDefault("rules.scared_time", rules.ScaredTime)

	// Game
	v.SetDefault("game.layout", "")
	v.SetDefault("game.ghost", agents.KindRandom)
	v.SetDefault("game.max_moves", 1000)
	v.SetDefault("game.games", 1)
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.map.width", 20)
	v.SetDefault("game.map.height", 11)
	v.SetDefault("game.map.ghosts", 2)
	v.SetDefault("game.map.capsules", 2)
	v.SetDefault("game.map.min_ghost_spacing", 4)
	v.SetDefault("game.map.wall_veins.ratio", 25)
	v.SetDefault("game.map.wall_veins.min_length", 2)
	v.SetDefault("game.map.wall_veins.max_length_ratio", 0.25)

	// Logging
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Init initializes the configuration
func Init(configPath string) error {
	mu.Lock()
	defer mu.Unlock()

	v = viper.New()
	baseFile, envFile = "", ""

	// Set defaults before loading any config
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/multiagent-search")
	}

	// PAC_SEARCH_DEPTH overrides search.depth
	v.SetEnvPrefix("PAC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing file falls back to defaults. For the default locations
		// anything other than "not found" is a real error.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath == "" {
			return fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		baseFile = v.ConfigFileUsed()
	}

	next, err := decode()
	if err != nil {
		return err
	}
	if err := Validate(next); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	cfg = next

	return nil
}

// decode unmarshals the viper state into a fresh Config. Callers hold mu.
func decode() (*Config, error) {
	next := &Config{}
	if err := v.Unmarshal(next); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	return next, nil
}

// Get returns a copy of the global config. Later reloads and Set calls do
// not change a copy already handed out.
func Get() *Config {
	mu.RLock()
	if cfg != nil {
		c := *cfg
		mu.RUnlock()
		return &c
	}
	mu.RUnlock()

	// Initialize with defaults if not already initialized
	if err := Init(""); err != nil {
		panic("failed to initialize config with defaults: " + err.Error())
	}
	return Get()
}

// GetViper returns the viper instance for advanced usage. It is not
// guarded against a concurrent reload.
func GetViper() *viper.Viper {
	mu.RLock()
	defer mu.RUnlock()
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// LoadEnvironmentConfig merges config.<env>.yaml over the loaded config
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	file := fmt.Sprintf("config.%s.yaml", env)
	if err := mergeFile(file); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error merging environment config %s: %w", file, err)
		}
	} else {
		envFile = file
	}

	next, err := decode()
	if err != nil {
		return err
	}
	if err := Validate(next); err != nil {
		return err
	}
	cfg = next
	return nil
}

func mergeFile(file string) error {
	v.SetConfigFile(file)
	return v.MergeInConfig()
}

// Set allows runtime config updates. A value that does not decode into the
// config struct is rejected and the previous value is restored.
func Set(key string, value interface{}) error {
	mu.Lock()
	defer mu.Unlock()

	previous := v.Get(key)
	v.Set(key, value)

	next, err := decode()
	if err != nil {
		v.Set(key, previous)
		return fmt.Errorf("setting %s: %w", key, err)
	}
	cfg = next
	return nil
}

// GetString gets a string value from config
func GetString(key string) string {
	mu.RLock()
	defer mu.RUnlock()
	return v.GetString(key)
}

// GetInt gets an int value from config
func GetInt(key string) int {
	mu.RLock()
	defer mu.RUnlock()
	return v.GetInt(key)
}

// ConfigFilePath returns the path of the config file read by Init
func ConfigFilePath() string {
	mu.RLock()
	defer mu.RUnlock()
	return baseFile
}

// reload rereads the base file and the environment overlay. A config that
// fails to decode or validate is reported and the previous values are kept.
// Values set with Set survive a reload.
func reload() error {
	mu.Lock()
	defer mu.Unlock()

	if baseFile != "" {
		v.SetConfigFile(baseFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	if envFile != "" {
		if err := mergeFile(envFile); err != nil {
			return fmt.Errorf("error merging environment config %s: %w", envFile, err)
		}
	}

	next, err := decode()
	if err != nil {
		return err
	}
	if err := Validate(next); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	cfg = next
	return nil
}

// WatchConfig enables hot-reloading of the config file and its environment
// overlay. onChange is called after every reload attempt with its error.
// The returned function stops watching.
func WatchConfig(onChange func(err error)) (func() error, error) {
	mu.RLock()
	files := map[string]bool{}
	if baseFile != "" {
		files[filepath.Clean(baseFile)] = true
	}
	if envFile != "" {
		files[filepath.Clean(envFile)] = true
	}
	mu.RUnlock()

	if len(files) == 0 {
		return nil, fmt.Errorf("no config file to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating config watcher: %w", err)
	}
	// Watch the directories so editors that replace the file are seen
	dirs := map[string]bool{}
	for file := range files {
		dirs[filepath.Dir(file)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !files[filepath.Clean(event.Name)] {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				err := reload()
				if onChange != nil {
					onChange(err)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn().Err(err).Str("component", "config").Msg("Config watcher error")
			}
		}
	}()

	return watcher.Close, nil
}

// Validate checks the configuration for invalid values
func Validate(c *Config) error {
	if _, err := search.ParseAlgorithm(c.Search.Algorithm); err != nil {
		return fmt.Errorf("search.algorithm: %w", err)
	}
	if c.Search.Depth < 0 {
		return fmt.Errorf("search.depth must be non-negative")
	}
	if _, err := heuristics.Lookup(c.Search.Evaluator); err != nil {
		return fmt.Errorf("search.evaluator: %w", err)
	}

	if c.Heuristics.Reflex.GhostRadius < 0 || c.Heuristics.Better.GhostRadius < 0 {
		return fmt.Errorf("heuristics ghost_radius must be non-negative")
	}

	if c.Rules.ScaredTime < 0 {
		return fmt.Errorf("rules.scared_time must be non-negative")
	}

	if _, err := agents.ParseGhostKind(c.Game.Ghost); err != nil {
		return fmt.Errorf("game.ghost: %w", err)
	}
	if c.Game.MaxMoves < 0 {
		return fmt.Errorf("game.max_moves must be non-negative")
	}
	if c.Game.Games <= 0 {
		return fmt.Errorf("game.games must be positive")
	}
	if c.Game.Layout == "" {
		if c.Game.Map.Width < 3 || c.Game.Map.Height < 3 {
			return fmt.Errorf("game.map dimensions must be at least 3")
		}
		if c.Game.Map.Ghosts < 0 || c.Game.Map.Capsules < 0 {
			return fmt.Errorf("game.map ghosts and capsules must be non-negative")
		}
		if c.Game.Map.WallVeins.Ratio <= 0 {
			return fmt.Errorf("game.map.wall_veins.ratio must be positive")
		}
		if c.Game.Map.WallVeins.MaxLengthRatio < 0 || c.Game.Map.WallVeins.MaxLengthRatio > 1 {
			return fmt.Errorf("game.map.wall_veins.max_length_ratio must be between 0 and 1")
		}
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json")
	}

	return nil
}

// GameRules converts the rules section into game rules
func (c *Config) GameRules() game.Rules {
	return game.Rules{
		TimePenalty:   c.Rules.TimePenalty,
		FoodScore:     c.Rules.FoodScore,
		WinPoints:     c.Rules.WinPoints,
		LosePoints:    c.Rules.LosePoints,
		EatGhostScore: c.Rules.EatGhostScore,
		ScaredTime:    c.Rules.ScaredTime,
	}
}

// PacmanConfig converts the search and heuristics sections into agent settings
func (c *Config) PacmanConfig() agents.PacmanConfig {
	r, b := c.Heuristics.Reflex, c.Heuristics.Better
	return agents.PacmanConfig{
		Algorithm: c.Search.Algorithm,
		Depth:     c.Search.Depth,
		Evaluator: c.Search.Evaluator,
		Reflex: &heuristics.ReflexConfig{
			FoodBonus:          r.FoodBonus,
			GhostPenalty:       r.GhostPenalty,
			GhostRadius:        r.GhostRadius,
			CollisionPenalty:   r.CollisionPenalty,
			FoodDistanceWeight: r.FoodDistanceWeight,
		},
		Better: &heuristics.BetterConfig{
			FoodCountWeight:    b.FoodCountWeight,
			FoodDistanceWeight: b.FoodDistanceWeight,
			CapsuleWeight:      b.CapsuleWeight,
			GhostRadius:        b.GhostRadius,
			GhostPenalty:       b.GhostPenalty,
			ScaredGhostWeight:  b.ScaredGhostWeight,
		},
	}
}

// MapgenConfig converts the game.map section into generator settings
func (c *Config) MapgenConfig() mapgen.MapConfig {
	m := c.Game.Map
	mc := mapgen.DefaultMapConfig(m.Width, m.Height, m.Ghosts)
	mc.NumCapsules = m.Capsules
	mc.MinGhostSpacing = m.MinGhostSpacing
	mc.NumWallVeins = (m.Width * m.Height) / m.WallVeins.Ratio
	mc.MinVeinLength = m.WallVeins.MinLength
	mc.MaxVeinLength = int(float64(m.Width) * m.WallVeins.MaxLengthRatio)
	return mc
}
