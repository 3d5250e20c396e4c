// Package service orchestrates chat turns over the store and turn engine.
package service

import (
	"errors"

	"github.com/abhishek-iiit/innotract/internal/config"
	"github.com/abhishek-iiit/innotract/internal/engine"
	"github.com/abhishek-iiit/innotract/internal/repository"
	"github.com/abhishek-iiit/innotract/policy"
)

// Client input and dependency faults, distinguished at the transport
// boundary.
var (
	ErrMessageRequired   = errors.New("message is required")
	ErrMessageBlocked    = errors.New("message blocked by intake policy")
	ErrSessionNotFound   = errors.New("session not found")
	ErrEngineUnavailable = errors.New("conversation engine not available")
)

// Service implements the turn-processing contract.
type Service struct {
	store        store.Store
	engine       *engine.Engine
	policyEngine *policy.Engine
	config       *config.Config
}

// New creates a new service. A nil engine is a normal, checked state:
// chat requests are refused with ErrEngineUnavailable until the
// generation service is reachable at startup.
func New(store store.Store, eng *engine.Engine, policyEngine *policy.Engine, cfg *config.Config) *Service {
	return &Service{
		store:        store,
		engine:       eng,
		policyEngine: policyEngine,
		config:       cfg,
	}
}

// EngineAvailable reports whether the turn engine was constructed.
func (s *Service) EngineAvailable() bool {
	return s.engine != nil
}
