// Package location models the device location collaborator: an
// authorization state machine plus a stream of coordinate updates.
package location

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"weather-forecast/internal/models"
)

type Authorization string

const (
	AuthorizationUndetermined Authorization = "undetermined"
	AuthorizationGranted      Authorization = "granted"
	AuthorizationDenied       Authorization = "denied"
	AuthorizationRestricted   Authorization = "restricted"
)

func ParseAuthorization(s string) (Authorization, error) {
	switch a := Authorization(strings.ToLower(strings.TrimSpace(s))); a {
	case AuthorizationUndetermined, AuthorizationGranted, AuthorizationDenied, AuthorizationRestricted:
		return a, nil
	case "":
		return AuthorizationUndetermined, nil
	default:
		return "", fmt.Errorf("unknown location authorization %q", s)
	}
}

// Update is one position fix, or the reason none could be produced.
type Update struct {
	Coordinate models.Coordinate
	Err        error
}

type Provider interface {
	Authorization() Authorization
	// RequestAuthorization prompts for access when the state is undetermined
	// and returns the resulting state.
	RequestAuthorization(ctx context.Context) (Authorization, error)
	// Updates streams fixes until ctx is done; the channel is closed then.
	Updates(ctx context.Context) (<-chan Update, error)
}

// StaticProvider reports a fixed, configured device position.
type StaticProvider struct {
	mu    sync.Mutex
	auth  Authorization
	coord *models.Coordinate
}

// NewStaticProvider creates a provider in the given authorization state.
// A nil coordinate means the device has no fix: prompts are denied and an
// already-granted provider reports the location as unavailable.
func NewStaticProvider(auth Authorization, coord *models.Coordinate) *StaticProvider {
	if auth == "" {
		auth = AuthorizationUndetermined
	}
	return &StaticProvider{auth: auth, coord: coord}
}

func (p *StaticProvider) Authorization() Authorization {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.auth
}

func (p *StaticProvider) RequestAuthorization(ctx context.Context) (Authorization, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.auth == AuthorizationUndetermined {
		if p.coord != nil {
			p.auth = AuthorizationGranted
		} else {
			p.auth = AuthorizationDenied
		}
	}
	return p.auth, nil
}

func (p *StaticProvider) Updates(ctx context.Context) (<-chan Update, error) {
	p.mu.Lock()
	auth, coord := p.auth, p.coord
	p.mu.Unlock()

	if auth != AuthorizationGranted {
		return nil, fmt.Errorf("%w: authorization is %s", models.ErrLocationPermissionDenied, auth)
	}

	ch := make(chan Update, 1)
	if coord == nil {
		ch <- Update{Err: fmt.Errorf("%w: no position fix", models.ErrLocationUnavailable)}
	} else {
		ch <- Update{Coordinate: *coord}
	}

	go func() {
		<-ctx.Done()
		close(ch)
	}()

	return ch, nil
}
