package run

import (
	"fmt"

	"sleephmm/domain/core"
	"sleephmm/domain/hmm"
)

// Config holds the caller-supplied parameters for one estimation run.
type Config struct {
	Iterations int                `json:"iterations"`
	BurnIn     int                `json:"burn_in"`
	Variables  []core.VariableKey `json:"variables"`
}

// Validate checks the run parameters for basic sanity. Each check is
// independent and reports its own failure; there is no local recovery, a bad
// configuration aborts the run before any random draw or file write.
func (c Config) Validate() error {
	if c.Iterations <= 0 {
		return core.NewConfigurationError("iterations",
			fmt.Sprintf("must be positive, got %d", c.Iterations))
	}
	if c.BurnIn <= 0 {
		return core.NewConfigurationError("burn_in",
			fmt.Sprintf("must be positive, got %d", c.BurnIn))
	}
	if c.BurnIn >= c.Iterations {
		return core.NewConfigurationError("burn_in",
			fmt.Sprintf("must be less than iterations (%d >= %d)", c.BurnIn, c.Iterations))
	}

	alt1, alt2 := hmm.ExclusiveAlternates()
	requested := make(map[core.VariableKey]bool, len(c.Variables))
	for _, v := range c.Variables {
		requested[v] = true
	}
	if requested[alt1] && requested[alt2] {
		return core.NewConfigurationError("variables",
			fmt.Sprintf("%s and %s are alternates of the same channel and cannot both be requested", alt1, alt2))
	}
	for _, v := range c.Variables {
		if !hmm.IsKnown(v) {
			return core.NewConfigurationError("variables",
				fmt.Sprintf("unknown variable %q", v))
		}
	}
	return nil
}
