package mocks

import (
	"context"
	"fleetdesk/infras/otel"
	"sync"
)

// Otel is a no-op tracer that remembers traced errors for assertions.
type Otel struct {
	mu     sync.Mutex
	errors []error
}

func NewOtel() *Otel {
	return &Otel{}
}

// NewScope implements otel.Otel.
func (o *Otel) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, &scope{owner: o}
}

// Errors returns every error passed to TraceError so far.
func (o *Otel) Errors() []error {
	o.mu.Lock()
	defer o.mu.Unlock()

	return append([]error(nil), o.errors...)
}

type scope struct {
	owner *Otel
}

func (s *scope) End() {}

func (s *scope) AddEvent(_ string) {}

func (s *scope) SetAttribute(_ string, _ any) {}

func (s *scope) SetAttributes(_ map[string]any) {}

func (s *scope) TraceError(err error) {
	s.owner.mu.Lock()
	defer s.owner.mu.Unlock()

	s.owner.errors = append(s.owner.errors, err)
}

func (s *scope) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}
