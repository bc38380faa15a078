package testkit

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"sleephmm/domain/core"
	"sleephmm/domain/run"
	"sleephmm/ports"
)

// FakeSampler records fit requests and returns a canned model, or fails on
// demand.
type FakeSampler struct {
	mu       sync.Mutex
	Requests []ports.FitRequest
	Err      error
	Model    json.RawMessage
}

// NewFakeSampler creates a fake that returns a minimal fitted model.
func NewFakeSampler() *FakeSampler {
	return &FakeSampler{Model: json.RawMessage(`{"fitted":true}`)}
}

func (f *FakeSampler) Fit(ctx context.Context, req ports.FitRequest) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Requests = append(f.Requests, req)
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Model, nil
}

// Calls returns how many times Fit was invoked.
func (f *FakeSampler) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Requests)
}

// InMemoryResultStore implements ports.ResultStore for tests.
type InMemoryResultStore struct {
	mu      sync.Mutex
	results map[core.RunID]*run.Result
}

// NewInMemoryResultStore creates an empty store.
func NewInMemoryResultStore() *InMemoryResultStore {
	return &InMemoryResultStore{results: make(map[core.RunID]*run.Result)}
}

func (s *InMemoryResultStore) Save(ctx context.Context, result *run.Result) error {
	if err := result.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.results[result.RunID]; ok {
		return fmt.Errorf("result already exists for run %s", result.RunID)
	}
	s.results[result.RunID] = result
	return nil
}

func (s *InMemoryResultStore) Get(ctx context.Context, runID core.RunID) (*run.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result, ok := s.results[runID]
	if !ok {
		return nil, core.NewNotFoundError("run result", runID.String())
	}
	return result, nil
}

// Len returns the number of persisted results.
func (s *InMemoryResultStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.results)
}
