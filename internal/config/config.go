package config

import (
	"errors"
	"ev-route-dashboard/internal/domain"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	OrderingNearest = "nearest"
	OrderingSampled = "sampled"
)

// Config is the full runtime configuration, read once at startup.
type Config struct {
	MapboxAccessToken string
	MapboxBaseURL     string
	MapboxRPS         float64
	MapboxTimeout     time.Duration

	Port string

	Center           domain.GeoPoint
	NumStops         int
	NumChargingStops int
	CoordRange       float64

	ChargingStepsOptimized   int
	ChargingStepsUnoptimized int
	SimStart                 time.Time
	SimWindow                time.Duration
	FrameInterval            time.Duration
	RandomSeed               int64
	StopOrdering             string

	RouteCachePath string
	DatabaseURL    string

	LogLevel  string
	LogFormat string
}

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load reads configuration from the environment. A missing access token is
// reported as domain.ErrMissingAccessToken.
func Load() (*Config, error) {
	token := strings.TrimSpace(os.Getenv("MAPBOX_ACCESS_TOKEN"))
	if token == "" {
		return nil, domain.ErrMissingAccessToken
	}

	p := &parser{}
	cfg := &Config{
		MapboxAccessToken: token,
		MapboxBaseURL:     strings.TrimRight(Get("MAPBOX_BASE_URL", "https://api.mapbox.com"), "/"),
		MapboxRPS:         p.floatVal("MAPBOX_RPS", 5),
		MapboxTimeout:     p.duration("MAPBOX_TIMEOUT", 10*time.Second),

		Port: Get("PORT", "8050"),

		Center: domain.GeoPoint{
			Lat: p.floatVal("CENTER_LAT", 42.3223),
			Lon: p.floatVal("CENTER_LON", -83.1763),
		},
		NumStops:         p.intVal("NUM_STOPS", 20),
		NumChargingStops: p.intVal("NUM_CHARGING_STOPS", 10),
		CoordRange:       p.floatVal("COORD_RANGE", 0.02),

		ChargingStepsOptimized:   p.intVal("CHARGING_STEPS_OPTIMIZED", 10),
		ChargingStepsUnoptimized: p.intVal("CHARGING_STEPS_UNOPTIMIZED", 20),
		SimStart:                 p.clock("SIM_START", "09:00"),
		SimWindow:                p.duration("SIM_WINDOW", 6*time.Hour),
		FrameInterval:            p.duration("FRAME_INTERVAL", 500*time.Millisecond),
		RandomSeed:               int64(p.intVal("RANDOM_SEED", 0)),
		StopOrdering:             strings.ToLower(Get("STOP_ORDERING", OrderingNearest)),

		RouteCachePath: Get("ROUTE_CACHE_PATH", ""),
		DatabaseURL:    Get("DATABASE_URL", ""),

		LogLevel:  Get("LOG_LEVEL", "info"),
		LogFormat: Get("LOG_FORMAT", "text"),
	}

	if p.err != nil {
		return nil, fmt.Errorf("load config: %w", p.err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.NumStops < 2 {
		errs = append(errs, fmt.Errorf("NUM_STOPS must be >= 2, got %d", c.NumStops))
	}
	if c.NumChargingStops < 0 {
		errs = append(errs, fmt.Errorf("NUM_CHARGING_STOPS must be >= 0, got %d", c.NumChargingStops))
	}
	if c.CoordRange <= 0 {
		errs = append(errs, fmt.Errorf("COORD_RANGE must be > 0, got %v", c.CoordRange))
	}
	if c.ChargingStepsOptimized < 0 || c.ChargingStepsUnoptimized < 0 {
		errs = append(errs, errors.New("charging step counts must be >= 0"))
	}
	if c.SimWindow <= 0 {
		errs = append(errs, fmt.Errorf("SIM_WINDOW must be > 0, got %v", c.SimWindow))
	}
	if c.FrameInterval <= 0 {
		errs = append(errs, fmt.Errorf("FRAME_INTERVAL must be > 0, got %v", c.FrameInterval))
	}
	if c.MapboxRPS <= 0 {
		errs = append(errs, fmt.Errorf("MAPBOX_RPS must be > 0, got %v", c.MapboxRPS))
	}
	if c.StopOrdering != OrderingNearest && c.StopOrdering != OrderingSampled {
		errs = append(errs, fmt.Errorf("STOP_ORDERING must be %q or %q, got %q", OrderingNearest, OrderingSampled, c.StopOrdering))
	}
	return errors.Join(errs...)
}

// parser keeps the first conversion error so Load can report it once.
type parser struct {
	err error
}

func (p *parser) fail(key, raw string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("invalid %s=%q: %w", key, raw, err)
	}
}

func (p *parser) intVal(key string, fallback int) int {
	raw := Get(key, "")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(key, raw, err)
		return fallback
	}
	return n
}

func (p *parser) floatVal(key string, fallback float64) float64 {
	raw := Get(key, "")
	if raw == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.fail(key, raw, err)
		return fallback
	}
	return f
}

func (p *parser) duration(key string, fallback time.Duration) time.Duration {
	raw := Get(key, "")
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		p.fail(key, raw, err)
		return fallback
	}
	return d
}

// clock parses a wall-clock "15:04" value; only the time of day is meaningful.
func (p *parser) clock(key, fallback string) time.Time {
	raw := Get(key, fallback)
	t, err := time.Parse("15:04", raw)
	if err != nil {
		p.fail(key, raw, err)
		t, _ = time.Parse("15:04", fallback)
	}
	return t
}
