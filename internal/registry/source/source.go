// Package source feeds the registry from an external roll. Fetch failures
// carry a Kind so callers can tell a dropped connection from a bad request.
package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"voterroll/internal/voter/models"
)

//go:generate mockgen -source=source.go -destination=mocks/mocks.go -package=mocks Fetcher

// Fetcher returns raw records matching filters.
type Fetcher interface {
	Fetch(ctx context.Context, filters FetchFilters) ([]models.Fields, error)
}

// FetchFilters narrows a fetch. Zero values mean "no constraint".
type FetchFilters struct {
	BoothIDs       []string  `validate:"dive,notblank"`
	ConstituencyID string    `validate:"omitempty,notblank"`
	UpdatedSince   time.Time `validate:"-"`
	Limit          int       `validate:"gte=0"`
}

// ErrorKind classifies a fetch failure.
type ErrorKind string

const (
	KindNetwork    ErrorKind = "network"
	KindServer     ErrorKind = "server"
	KindValidation ErrorKind = "validation"
)

// FetchError is the only error type a Fetcher returns.
type FetchError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s error", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s error: %v", e.Op, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func NewFetchError(kind ErrorKind, op string, err error) *FetchError {
	return &FetchError{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind of the first FetchError in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind, true
	}
	return "", false
}
