// Package sampler provides the default in-process MCMC collaborator: a
// single-site Gibbs sampler for the multilevel sleep-stage HMM. The
// orchestrator only depends on ports.Sampler, so an external estimator can
// replace this without touching run preparation.
package sampler

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"

	"sleephmm/domain/core"
	"sleephmm/ports"
)

// Gibbs implements ports.Sampler.
type Gibbs struct{}

// NewGibbs creates the default sampler.
func NewGibbs() *Gibbs {
	return &Gibbs{}
}

var _ ports.Sampler = (*Gibbs)(nil)

// FittedModel is the posterior summary returned by Fit. Group-level values
// are averages over retained (post burn-in) draws across subjects.
type FittedModel struct {
	Subjects       int         `json:"subjects"`
	RetainedDraws  int         `json:"retained_draws"`
	GroupGamma     [][]float64 `json:"group_gamma"`
	EmissionMeans  [][]float64 `json:"emission_means"`
	EmissionVars   [][]float64 `json:"emission_vars"`
	StateOccupancy []float64   `json:"state_occupancy"`
}

// Fit runs the chain to completion. The request's seed fully determines the
// draw sequence.
func (g *Gibbs) Fit(ctx context.Context, req ports.FitRequest) (json.RawMessage, error) {
	if req.OrderData {
		return nil, core.NewSamplerError(errors.New("data reordering is the caller's responsibility"))
	}
	if len(req.Data.Rows) == 0 {
		return nil, core.NewSamplerError(errors.New("empty data matrix"))
	}
	if len(req.Data.Columns) != req.Shape.NDep+1 {
		return nil, core.NewSamplerError(errors.New("data matrix column count does not match model shape"))
	}

	m := req.Shape.States
	nDep := req.Shape.NDep
	rng := rand.New(rand.NewSource(req.Seed))

	sequences := groupBySubject(req.Data.Rows)
	nSubj := len(sequences)

	// Per-subject transition matrices start from the shared initial TPM;
	// emission parameters start from the prepared initial values.
	gammas := make([][][]float64, nSubj)
	for i := range gammas {
		gammas[i] = copyMatrix(req.Transition.Rows)
	}
	emMeans := make([][]float64, nDep)
	emVars := make([][]float64, nDep)
	for v := 0; v < nDep; v++ {
		emMeans[v] = make([]float64, m)
		emVars[v] = make([]float64, m)
		for s := 0; s < m; s++ {
			emMeans[v][s] = req.Emission[v].Mean(s + 1)
			emVars[v][s] = math.Max(req.Emission[v].Variance(s+1), 1e-6)
		}
	}

	current := initStates(sequences, emMeans, m, nDep)

	retained := 0
	accGamma := zeros(m, m)
	accMeans := zeros(nDep, m)
	accVars := zeros(nDep, m)
	occupancy := make([]float64, m)

	for it := 0; it < req.Iterations; it++ {
		if err := ctx.Err(); err != nil {
			return nil, core.NewSamplerError(err)
		}

		for subj, seq := range sequences {
			sampleStates(rng, seq, current[subj], gammas[subj], emMeans, emVars, m, nDep)
			updateGamma(current[subj], gammas[subj], m)
		}
		updateEmissions(rng, sequences, current, req.Priors, emMeans, emVars, m, nDep)

		if it >= req.BurnIn {
			retained++
			for subj := range gammas {
				for i := 0; i < m; i++ {
					floats.Add(accGamma[i], gammas[subj][i])
				}
			}
			for v := 0; v < nDep; v++ {
				floats.Add(accMeans[v], emMeans[v])
				floats.Add(accVars[v], emVars[v])
			}
			for _, seq := range current {
				for _, s := range seq {
					occupancy[s]++
				}
			}
		}
	}

	if retained == 0 {
		return nil, core.NewSamplerError(errors.New("no draws retained after burn-in"))
	}

	scale := 1 / float64(retained)
	for i := 0; i < m; i++ {
		floats.Scale(scale/float64(nSubj), accGamma[i])
	}
	for v := 0; v < nDep; v++ {
		floats.Scale(scale, accMeans[v])
		floats.Scale(scale, accVars[v])
	}
	if total := floats.Sum(occupancy); total > 0 {
		floats.Scale(1/total, occupancy)
	}

	model := FittedModel{
		Subjects:       nSubj,
		RetainedDraws:  retained,
		GroupGamma:     accGamma,
		EmissionMeans:  accMeans,
		EmissionVars:   accVars,
		StateOccupancy: occupancy,
	}
	payload, err := json.Marshal(model)
	if err != nil {
		return nil, core.NewSamplerError(err)
	}
	return payload, nil
}

// groupBySubject splits matrix rows into per-subject observation sequences,
// preserving row order. Column 0 is the subject index.
func groupBySubject(rows [][]float64) [][][]float64 {
	var order []float64
	bySubject := map[float64][][]float64{}
	for _, row := range rows {
		id := row[0]
		if _, ok := bySubject[id]; !ok {
			order = append(order, id)
		}
		bySubject[id] = append(bySubject[id], row[1:])
	}
	sequences := make([][][]float64, 0, len(order))
	for _, id := range order {
		sequences = append(sequences, bySubject[id])
	}
	return sequences
}

// initStates assigns each observation to the state whose emission means are
// closest, a cheap but serviceable starting sequence.
func initStates(sequences [][][]float64, emMeans [][]float64, m, nDep int) [][]int {
	states := make([][]int, len(sequences))
	for subj, seq := range sequences {
		states[subj] = make([]int, len(seq))
		for t, obs := range seq {
			best, bestDist := 0, math.Inf(1)
			for s := 0; s < m; s++ {
				dist := 0.0
				for v := 0; v < nDep; v++ {
					d := obs[v] - emMeans[v][s]
					dist += d * d
				}
				if dist < bestDist {
					best, bestDist = s, dist
				}
			}
			states[subj][t] = best
		}
	}
	return states
}

// sampleStates resamples the latent sequence one site at a time from the
// full conditional given neighbors and the observation likelihood.
func sampleStates(rng *rand.Rand, seq [][]float64, states []int, gamma [][]float64,
	emMeans, emVars [][]float64, m, nDep int) {

	weights := make([]float64, m)
	for t := range seq {
		for s := 0; s < m; s++ {
			w := 1.0
			if t > 0 {
				w *= gamma[states[t-1]][s]
			}
			if t < len(seq)-1 {
				w *= gamma[s][states[t+1]]
			}
			for v := 0; v < nDep; v++ {
				dist := distuv.Normal{Mu: emMeans[v][s], Sigma: math.Sqrt(emVars[v][s])}
				w *= dist.Prob(seq[t][v]) + 1e-300
			}
			weights[s] = w
		}
		states[t] = sampleCategorical(rng, weights)
	}
}

// updateGamma refreshes a subject's transition matrix from the current state
// sequence with a unit pseudo-count prior on every cell.
func updateGamma(states []int, gamma [][]float64, m int) {
	counts := zeros(m, m)
	for t := 1; t < len(states); t++ {
		counts[states[t-1]][states[t]]++
	}
	for i := 0; i < m; i++ {
		for j := 0; j < m; j++ {
			counts[i][j]++
		}
		total := floats.Sum(counts[i])
		for j := 0; j < m; j++ {
			gamma[i][j] = counts[i][j] / total
		}
	}
}

// updateEmissions draws new per-state emission means (normal-normal
// conjugate around the hyperprior) and refreshes variances from the
// within-state sums of squares.
func updateEmissions(rng *rand.Rand, sequences [][][]float64, states [][]int,
	priors [][]float64, emMeans, emVars [][]float64, m, nDep int) {

	const priorWeight = 1.0
	for v := 0; v < nDep; v++ {
		for s := 0; s < m; s++ {
			n := 0.0
			sum := 0.0
			for subj, seq := range sequences {
				for t, obs := range seq {
					if states[subj][t] == s {
						n++
						sum += obs[v]
					}
				}
			}
			postMean := (priors[v][s]*priorWeight + sum) / (priorWeight + n)
			postSD := math.Sqrt(emVars[v][s] / (priorWeight + n))
			emMeans[v][s] = postMean + postSD*rng.NormFloat64()

			ss := 0.0
			for subj, seq := range sequences {
				for t, obs := range seq {
					if states[subj][t] == s {
						d := obs[v] - emMeans[v][s]
						ss += d * d
					}
				}
			}
			emVars[v][s] = math.Max((ss+priorWeight*emVars[v][s])/(n+priorWeight), 1e-6)
		}
	}
}

func sampleCategorical(rng *rand.Rand, weights []float64) int {
	total := floats.Sum(weights)
	u := rng.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if u <= acc {
			return i
		}
	}
	return len(weights) - 1
}

func copyMatrix(src [][]float64) [][]float64 {
	out := make([][]float64, len(src))
	for i, row := range src {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

func zeros(rows, cols int) [][]float64 {
	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
	}
	return out
}
