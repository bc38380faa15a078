package app

import (
	"context"

	"sleephmm/domain/core"
	"sleephmm/domain/hmm"
	"sleephmm/domain/run"
	"sleephmm/domain/signal"
	"sleephmm/internal"
	"sleephmm/ports"
)

// RunService orchestrates one estimation run: validate, canonicalize,
// build hyperpriors, generate the initial state, project the data, invoke
// the sampler, persist the result. Any failure aborts before persistence;
// partial results are never written.
type RunService struct {
	signalSource   ports.SignalSource
	summarySource  ports.AggregateSource
	varianceSource ports.AggregateSource
	sampler        ports.Sampler
	store          ports.ResultStore
	rng            ports.RNG
	log            *internal.Logger
}

// NewRunService creates a run orchestrator.
func NewRunService(
	signalSource ports.SignalSource,
	summarySource ports.AggregateSource,
	varianceSource ports.AggregateSource,
	sampler ports.Sampler,
	store ports.ResultStore,
	rng ports.RNG,
	log *internal.Logger,
) *RunService {
	return &RunService{
		signalSource:   signalSource,
		summarySource:  summarySource,
		varianceSource: varianceSource,
		sampler:        sampler,
		store:          store,
		rng:            rng,
		log:            log,
	}
}

// RunRequest carries the caller's parameters. Seed 0 means draw a fresh one;
// any other value pins the run for reproduction.
type RunRequest struct {
	Config run.Config
	Seed   int64
}

// Run executes one chain to completion and persists exactly one artifact.
func (s *RunService) Run(ctx context.Context, req RunRequest) (*run.Result, error) {
	// Validation comes before any random draw or side effect.
	if err := req.Config.Validate(); err != nil {
		return nil, err
	}

	vars := hmm.Canonicalize(req.Config.Variables)
	shape := hmm.DefaultShape()

	seed := req.Seed
	if seed == 0 {
		seed = run.DrawSeed()
	}
	s.log.Info("starting run: seed=%d variables=%v iterations=%d burn_in=%d",
		seed, vars, req.Config.Iterations, req.Config.BurnIn)

	stream, err := s.rng.SeededStream(ctx, "initial-state", seed)
	if err != nil {
		return nil, err
	}

	summary, err := s.summarySource.Load(ctx)
	if err != nil {
		return nil, err
	}
	variance, err := s.varianceSource.Load(ctx)
	if err != nil {
		return nil, err
	}

	priors, err := hmm.BuildHyperpriors(vars, summary, shape)
	if err != nil {
		return nil, err
	}

	initial, err := hmm.GenerateInitialState(stream, shape, vars, summary, variance)
	if err != nil {
		return nil, err
	}

	records, err := s.signalSource.Load(ctx)
	if err != nil {
		return nil, err
	}
	matrix, err := signal.Project(records, vars)
	if err != nil {
		return nil, err
	}
	s.log.Debug("projected %d rows over %d subjects", len(matrix.Rows), matrix.Subjects())

	runID := core.RunID(core.NewID())
	fitted, err := s.sampler.Fit(ctx, ports.FitRequest{
		Data:         matrix,
		Transition:   initial.Transition,
		Emission:     initial.Emission,
		Shape:        shape,
		Priors:       priors,
		Seed:         seed,
		Iterations:   req.Config.Iterations,
		BurnIn:       req.Config.BurnIn,
		OrderData:    false,
		ShowProgress: false,
	})
	if err != nil {
		if core.IsSamplerError(err) {
			return nil, err
		}
		return nil, core.NewSamplerError(err)
	}

	result := run.NewResult(runID, req.Config, seed, vars, shape, *initial, priors, fitted)
	if err := s.store.Save(ctx, result); err != nil {
		return nil, err
	}
	s.log.Info("run %s persisted", runID)
	return result, nil
}
