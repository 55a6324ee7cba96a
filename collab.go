// collab.go
package main

import (
	"fmt"
	"time"
)

// Repository abstracts the version-control operations invoked around the
// persisted-file step. Implementations live outside the converter core.
type Repository interface {
	CreateBranch(name, from string) error
	SwitchBranch(name string) error
	Commit(message string) error
	Push(remote, branch string) error
	Merge(source, target string) error
	ListBranches() ([]string, error)
}

// NoopRepository satisfies Repository without touching any repository;
// used when no VCS integration is wired in.
type NoopRepository struct{}

func (NoopRepository) CreateBranch(name, from string) error { return nil }
func (NoopRepository) SwitchBranch(name string) error       { return nil }
func (NoopRepository) Commit(message string) error          { return nil }
func (NoopRepository) Push(remote, branch string) error     { return nil }
func (NoopRepository) Merge(source, target string) error    { return nil }
func (NoopRepository) ListBranches() ([]string, error)      { return nil, nil }

// FeatureBranchName returns the conventional feature-branch name for a
// content category.
func FeatureBranchName(category string, now time.Time) string {
	return fmt.Sprintf("feature/%s-%s", category, now.Format("20060102"))
}

// InferenceResult is the opaque outcome of one model call.
type InferenceResult struct {
	Label      string
	Confidence float64
}

// Predictor runs model inference for a text or image input. The core only
// consumes this interface; backends are external.
type Predictor interface {
	RunInference(input, model, device string) (*InferenceResult, error)
}

// PredictorCache hands out predictors keyed by (model, device). The caller
// owns the cache; there is no package-level instance.
type PredictorCache struct {
	factory func(model, device string) (Predictor, error)
	cache   map[string]Predictor
}

func NewPredictorCache(factory func(model, device string) (Predictor, error)) *PredictorCache {
	return &PredictorCache{
		factory: factory,
		cache:   make(map[string]Predictor),
	}
}

// Get returns the cached predictor for the pair, constructing it on first
// use.
func (pc *PredictorCache) Get(model, device string) (Predictor, error) {
	key := model + "|" + device
	if p, ok := pc.cache[key]; ok {
		return p, nil
	}
	p, err := pc.factory(model, device)
	if err != nil {
		return nil, err
	}
	pc.cache[key] = p
	return p, nil
}
