package hmm

import (
	"sleephmm/domain/core"
)

// Variable universe for the sleep signal model. The two EEG beta variables
// are alternate transforms of the same channel and may never appear together
// in one run.
const (
	VarEEGMeanBeta    core.VariableKey = "eeg_mean_beta"
	VarEEGLogBeta     core.VariableKey = "eeg_log_beta"
	VarEOGMedianTheta core.VariableKey = "eog_median_theta"
	VarEMGMeanGamma   core.VariableKey = "emg_mean_gamma"
)

// Universe returns the fixed set of admissible variable names.
func Universe() []core.VariableKey {
	return []core.VariableKey{VarEEGMeanBeta, VarEEGLogBeta, VarEOGMedianTheta, VarEMGMeanGamma}
}

// IsKnown reports whether key is a member of the variable universe.
func IsKnown(key core.VariableKey) bool {
	for _, k := range Universe() {
		if k == key {
			return true
		}
	}
	return false
}

// ExclusiveAlternates returns the pair of mutually exclusive EEG variables.
func ExclusiveAlternates() (core.VariableKey, core.VariableKey) {
	return VarEEGMeanBeta, VarEEGLogBeta
}

// Canonicalize fixes the working variable set and ordering for a validated
// request. The ordering is keyed only on which EEG alternate was requested;
// the auxiliary channels are fixed members of every run. Callers must have
// validated the request first (see run.Config.Validate).
func Canonicalize(requested []core.VariableKey) []core.VariableKey {
	for _, k := range requested {
		if k == VarEEGMeanBeta {
			return []core.VariableKey{VarEEGMeanBeta, VarEOGMedianTheta, VarEMGMeanGamma}
		}
	}
	return []core.VariableKey{VarEEGLogBeta, VarEOGMedianTheta, VarEMGMeanGamma}
}
