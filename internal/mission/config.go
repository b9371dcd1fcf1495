package mission

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the tunables for a mission run. Zero values are not
// usable; start from DefaultConfig or FromEnv.
type Config struct {
	// Mode selects the rover driver.
	Mode Mode
	// Course is the ID of the embedded course to run in sim mode.
	Course string
	// Seed feeds the simulator's noise source. A seed of 0 means a
	// time-based seed is generated.
	Seed int64
	// OpenThreshold is the range reading, in meters, at or above which a
	// side counts as an opening.
	OpenThreshold float64
	// RampPitch is the pitch, in degrees, at or above which the current
	// cell is tagged as a ramp.
	RampPitch float64
	// MinConfidence and MinArea gate raw detections before debouncing.
	MinConfidence float64
	MinArea       int
	// DebounceHits is how many consecutive frames a label must survive
	// before it counts as a sighting.
	DebounceHits int
	// Flakiness is the per-read probability of a transient sensor fault.
	Flakiness float64
	// SensorRetries bounds how often a flaky read is retried before the
	// mission aborts.
	SensorRetries uint
	// MaxSteps aborts the run if the rover has not finished by then.
	MaxSteps int
	// Headless disables the terminal view; the final map goes to stats.
	Headless bool
	// Telemetry turns span export on or off for the run.
	Telemetry bool
	// StepDelay paces the sim loop when a view is attached.
	StepDelay time.Duration
	// PollInterval is the orientation sampling period.
	PollInterval time.Duration
}

// DefaultConfig returns the settings used when the environment says
// nothing.
func DefaultConfig() Config {
	return Config{
		Mode:          ModeSim,
		Course:        "loop",
		Seed:          0,
		OpenThreshold: 0.25,
		RampPitch:     10.0,
		MinConfidence: 0.6,
		MinArea:       100,
		DebounceHits:  2,
		Flakiness:     0.02,
		SensorRetries: 5,
		MaxSteps:      500,
		Headless:      false,
		Telemetry:     true,
		StepDelay:     120 * time.Millisecond,
		PollInterval:  20 * time.Millisecond,
	}
}

// FromEnv builds a Config from MAZEROVER_* environment variables,
// falling back to DefaultConfig for anything unset.
func FromEnv() (Config, error) {
	cfg := DefaultConfig()

	if s := os.Getenv("MAZEROVER_MODE"); s != "" {
		mode, ok := ParseMode(s)
		if !ok {
			return cfg, fmt.Errorf("MAZEROVER_MODE: unknown mode %q", s)
		}
		cfg.Mode = mode
	}
	if s := os.Getenv("MAZEROVER_COURSE"); s != "" {
		cfg.Course = s
	}

	var err error
	if cfg.Seed, err = envInt64("MAZEROVER_SEED", cfg.Seed); err != nil {
		return cfg, err
	}
	if cfg.OpenThreshold, err = envFloat("MAZEROVER_OPEN_THRESHOLD", cfg.OpenThreshold); err != nil {
		return cfg, err
	}
	if cfg.RampPitch, err = envFloat("MAZEROVER_RAMP_PITCH", cfg.RampPitch); err != nil {
		return cfg, err
	}
	if cfg.MinConfidence, err = envFloat("MAZEROVER_MIN_CONFIDENCE", cfg.MinConfidence); err != nil {
		return cfg, err
	}
	if cfg.MinArea, err = envInt("MAZEROVER_MIN_AREA", cfg.MinArea); err != nil {
		return cfg, err
	}
	if cfg.DebounceHits, err = envInt("MAZEROVER_DEBOUNCE_HITS", cfg.DebounceHits); err != nil {
		return cfg, err
	}
	if cfg.Flakiness, err = envFloat("MAZEROVER_FLAKINESS", cfg.Flakiness); err != nil {
		return cfg, err
	}
	retries, err := envInt("MAZEROVER_SENSOR_RETRIES", int(cfg.SensorRetries))
	if err != nil {
		return cfg, err
	}
	cfg.SensorRetries = uint(retries)
	if cfg.MaxSteps, err = envInt("MAZEROVER_MAX_STEPS", cfg.MaxSteps); err != nil {
		return cfg, err
	}
	if cfg.Headless, err = envBool("MAZEROVER_HEADLESS", cfg.Headless); err != nil {
		return cfg, err
	}
	if cfg.Telemetry, err = envBool("MAZEROVER_TELEMETRY", cfg.Telemetry); err != nil {
		return cfg, err
	}
	if cfg.StepDelay, err = envDuration("MAZEROVER_STEP_DELAY", cfg.StepDelay); err != nil {
		return cfg, err
	}
	if cfg.PollInterval, err = envDuration("MAZEROVER_POLL_INTERVAL", cfg.PollInterval); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func envInt64(key string, fallback int64) (int64, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func envInt(key string, fallback int) (int, error) {
	v, err := envInt64(key, int64(fallback))
	return int(v), err
}

func envFloat(key string, fallback float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func envBool(key string, fallback bool) (bool, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}
