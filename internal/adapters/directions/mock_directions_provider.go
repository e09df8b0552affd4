package directions

import (
	"context"
	"ev-route-dashboard/internal/domain"
	"net/http"
	"sync"
)

type MockLeg struct {
	From, To domain.GeoPoint
	Points   []domain.GeoPoint
	// Status other than 0 or 200 makes the leg fail with RouteUnavailableError.
	Status int
}

// MockDirectionsProvider serves canned legs and records every lookup in order.
type MockDirectionsProvider struct {
	mu    sync.Mutex
	legs  map[string]MockLeg
	calls []string
}

func NewMockDirectionsProvider(legs []MockLeg) *MockDirectionsProvider {
	m := make(map[string]MockLeg, len(legs))
	for _, l := range legs {
		m[l.From.Key()+"|"+l.To.Key()] = l
	}
	return &MockDirectionsProvider{legs: m}
}

func (p *MockDirectionsProvider) GetRoute(ctx context.Context, from, to domain.GeoPoint) ([]domain.GeoPoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := from.Key() + "|" + to.Key()

	p.mu.Lock()
	p.calls = append(p.calls, key)
	p.mu.Unlock()

	l, ok := p.legs[key]
	if !ok {
		return nil, &domain.RouteUnavailableError{From: from, To: to, StatusCode: http.StatusNotFound, Body: `{"message":"no leg"}`}
	}
	if l.Status != 0 && l.Status != http.StatusOK {
		return nil, &domain.RouteUnavailableError{From: from, To: to, StatusCode: l.Status, Body: http.StatusText(l.Status)}
	}

	return l.Points, nil
}

// Calls returns the "from|to" keys looked up so far.
func (p *MockDirectionsProvider) Calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.calls...)
}
