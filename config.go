package qsim

import (
	"github.com/spf13/viper"
)

const (
	DefaultRtol         = 1e-5
	DefaultAtol         = 1e-8
	DefaultTolFactor    = 1e8
	DefaultNoiseEpsilon = 1e-8
)

/*
Config holds the numerical tolerances used by the simulators.

Rtol and Atol drive the validity check on custom initial states. TolFactor
scales machine epsilon when the density simulator decides whether a diagonal
entry is real enough to be a probability. Noise probabilities within
NoiseEpsilon of zero are skipped.
*/
type Config struct {
	Rtol         float64
	Atol         float64
	TolFactor    float64
	NoiseEpsilon float64
}

// NewConfig returns the defaults, overridden by QSIM_RTOL, QSIM_ATOL,
// QSIM_TOL_FACTOR and QSIM_NOISE_EPSILON when set.
func NewConfig() *Config {
	v := viper.New()
	v.SetEnvPrefix("QSIM")
	v.AutomaticEnv()
	return ConfigFromViper(v)
}

// ConfigFromViper reads the tolerances from v, registering the defaults on
// it first so flags and env bound by the caller take precedence.
func ConfigFromViper(v *viper.Viper) *Config {
	v.SetDefault("rtol", DefaultRtol)
	v.SetDefault("atol", DefaultAtol)
	v.SetDefault("tol_factor", DefaultTolFactor)
	v.SetDefault("noise_epsilon", DefaultNoiseEpsilon)

	return &Config{
		Rtol:         v.GetFloat64("rtol"),
		Atol:         v.GetFloat64("atol"),
		TolFactor:    v.GetFloat64("tol_factor"),
		NoiseEpsilon: v.GetFloat64("noise_epsilon"),
	}
}
