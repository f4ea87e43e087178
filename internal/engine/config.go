package engine

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"matchd/internal/store"
)

// Defaults applied when corresponding Config fields are unset.
const (
	defaultMatchDuration    = 5 * time.Minute
	defaultMinEventInterval = 5 * time.Second
	defaultMaxEventInterval = 30 * time.Second
)

var defaultPlayers = []string{
	"Abebe", "Tesfaye", "Kebede", "Girma", "Tadesse",
	"Bekele", "Lemma", "Haile", "Wolde", "Mulugeta",
	"Desta", "Gebre", "Yohannes", "Mengistu", "Getachew",
}

var defaultCardTypes = []string{"Yellow Card", "Red Card"}

var defaultFoulTypes = []string{"Hard tackle", "Hand ball", "Offside", "Dangerous play"}

// Fixture is a pair of team names used by SeedMatches.
type Fixture struct {
	TeamA string
	TeamB string
}

var defaultFixtures = []Fixture{
	{TeamA: "Manchester United", TeamB: "Liverpool"},
	{TeamA: "Real Madrid", TeamB: "Barcelona"},
	{TeamA: "Bayern Munich", TeamB: "Borussia Dortmund"},
	{TeamA: "PSG", TeamB: "Marseille"},
	{TeamA: "Juventus", TeamB: "AC Milan"},
}

// Config encapsulates all tunables for Engine construction.
type Config struct {
	Store *store.Store

	// MatchDuration is how long a match stays live before the end-of-match
	// timer fires.
	MatchDuration time.Duration
	// MinEventInterval/MaxEventInterval bound the uniform random delay
	// between generated events.
	MinEventInterval time.Duration
	MaxEventInterval time.Duration

	// Players is the roster event generation draws names from.
	Players []string
	// CardTypes/FoulTypes are the phrase sets for card and foul details.
	CardTypes []string
	FoulTypes []string
	// Fixtures are the team pairs created by SeedMatches.
	Fixtures []Fixture

	// Rand is the random source for delays, kinds, sides and names. Nil
	// means a time-seeded source; tests inject a fixed seed.
	Rand rand.Source
	// Now is the clock; nil means time.Now. Tests inject a fake.
	Now func() time.Time

	// Logger is optional; nil means no logging.
	Logger *zerolog.Logger
}

// New constructs an Engine from Config, applying package defaults for
// anything unset.
func New(cfg Config) *Engine {
	if cfg.MatchDuration <= 0 {
		cfg.MatchDuration = defaultMatchDuration
	}
	if cfg.MinEventInterval <= 0 {
		cfg.MinEventInterval = defaultMinEventInterval
	}
	if cfg.MaxEventInterval <= 0 {
		cfg.MaxEventInterval = defaultMaxEventInterval
	}
	if cfg.MaxEventInterval < cfg.MinEventInterval {
		cfg.MaxEventInterval = cfg.MinEventInterval
	}
	if len(cfg.Players) == 0 {
		cfg.Players = defaultPlayers
	}
	if len(cfg.CardTypes) == 0 {
		cfg.CardTypes = defaultCardTypes
	}
	if len(cfg.FoulTypes) == 0 {
		cfg.FoulTypes = defaultFoulTypes
	}
	if len(cfg.Fixtures) == 0 {
		cfg.Fixtures = defaultFixtures
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.NewSource(time.Now().UnixNano())
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		nop := zerolog.Nop()
		cfg.Logger = &nop
	}
	return &Engine{
		store:    cfg.Store,
		pub:      noopPublisher{},
		timers:   make(map[string]*matchTimers),
		duration: cfg.MatchDuration,
		minDelay: cfg.MinEventInterval,
		maxDelay: cfg.MaxEventInterval,
		players:  cfg.Players,
		cards:    cfg.CardTypes,
		fouls:    cfg.FoulTypes,
		fixtures: cfg.Fixtures,
		rnd:      rand.New(cfg.Rand),
		now:      cfg.Now,
		log:      *cfg.Logger,
	}
}
