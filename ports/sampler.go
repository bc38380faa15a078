package ports

import (
	"context"
	"encoding/json"

	"sleephmm/domain/hmm"
	"sleephmm/domain/signal"
)

// FitRequest is the full call into the external MCMC collaborator. The data
// matrix is already projected and ordered by the orchestrator; OrderData
// stays false so the sampler never re-derives ordering on its own.
type FitRequest struct {
	Data         signal.Matrix        `json:"data"`
	Transition   hmm.TransitionMatrix `json:"transition"`
	Emission     hmm.EmissionParams   `json:"emission"`
	Shape        hmm.Shape            `json:"shape"`
	Priors       hmm.HyperpriorMeans  `json:"priors"`
	Seed         int64                `json:"seed"`
	Iterations   int                  `json:"iterations"`
	BurnIn       int                  `json:"burn_in"`
	OrderData    bool                 `json:"order_data"`
	ShowProgress bool                 `json:"show_progress"`
}

// Sampler is the external MCMC estimation collaborator. The fitted model is
// opaque to this core; it is persisted verbatim inside the run result.
// Failures are fatal and never retried: a chain is not safely retryable with
// the same seed and partial state.
type Sampler interface {
	Fit(ctx context.Context, req FitRequest) (json.RawMessage, error)
}
