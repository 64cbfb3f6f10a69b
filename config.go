package pbsm3d

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the module's recognised configuration options, decoded from
// TOML the way inmap's run configuration is decoded from configData: zero
// values mean "use the default", applied by WithDefaults.
type Config struct {
	// SettlingVelocity is the vertical settling velocity of suspended
	// particles, m/s. Must be negative (downward). Default -0.5.
	SettlingVelocity float64 `toml:"settling_velocity"`
	// SnowDiffusionConst scales the vertical eddy diffusivity. Default 0.005.
	SnowDiffusionConst float64 `toml:"snow_diffusion_const"`
	// VerticalAdvection toggles the vertical advective terms in the
	// suspension assembly; false selects the pure-diffusion mode.
	VerticalAdvection *bool `toml:"vertical_advection"`
}

// nlayers and suspensionDepth are fixed by the suspension column's
// definition, not user-configurable options; the original sets them the
// same way (nLayer=5, susp_depth=5, "as per pomeroy").
const (
	nlayers         = 5
	suspensionDepth = 5.0

	defaultSettlingVelocity   = -0.5
	defaultSnowDiffusionConst = 0.005
)

// WithDefaults returns a copy of cfg with zero-valued fields set to their
// documented defaults.
func (cfg Config) WithDefaults() Config {
	out := cfg
	if out.SettlingVelocity == 0 {
		out.SettlingVelocity = defaultSettlingVelocity
	}
	if out.SnowDiffusionConst == 0 {
		out.SnowDiffusionConst = defaultSnowDiffusionConst
	}
	if out.VerticalAdvection == nil {
		t := true
		out.VerticalAdvection = &t
	}
	return out
}

// LayerHeight returns the vertical thickness of one suspension layer.
func (cfg Config) LayerHeight() float64 {
	return suspensionDepth / float64(nlayers)
}

// Validate checks the invariants Init enforces before running: settling
// velocity must be negative.
func (cfg Config) Validate() error {
	if cfg.SettlingVelocity >= 0 {
		return &ConfigError{Option: "settling_velocity", Err: errNonNegativeSettling}
	}
	return nil
}

var errNonNegativeSettling = configErrText("settling_velocity must be negative")

type configErrText string

func (e configErrText) Error() string { return string(e) }

// LoadConfig decodes a TOML configuration file at path and returns a
// Config with defaults applied.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	f, err := os.Open(path)
	if err != nil {
		return Config{}, &ConfigError{Option: path, Err: err}
	}
	defer f.Close()
	if _, err := toml.DecodeReader(f, &cfg); err != nil {
		return Config{}, &ConfigError{Option: path, Err: err}
	}
	return cfg.WithDefaults(), nil
}
