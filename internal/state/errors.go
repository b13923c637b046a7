package state

import (
	"context"
	"errors"
	"net"

	"github.com/carelink/carelink-go/internal/api"
	"github.com/carelink/carelink-go/internal/store"
	"github.com/carelink/carelink-go/internal/validation"
)

// ErrorKind is the structured failure cause carried by an Error slot.
// The original client collapsed every failure into one opaque marker;
// this layer keeps the wrapped error and classifies it so the UI can
// tell "check your connection" from "record no longer exists".
type ErrorKind int

const (
	// ErrorNone is the zero value for non-error snapshots
	ErrorNone ErrorKind = iota
	// ErrorTransport covers unreachable backend, timeouts and cancelled calls
	ErrorTransport
	// ErrorNotFound covers missing resources (404 or local store misses)
	ErrorNotFound
	// ErrorValidation covers pre-submit field violations
	ErrorValidation
	// ErrorUnknown covers everything else, including backend 5xx
	ErrorUnknown
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorNone:
		return "none"
	case ErrorTransport:
		return "transport"
	case ErrorNotFound:
		return "not_found"
	case ErrorValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Classify maps a repository failure onto its ErrorKind
func Classify(err error) ErrorKind {
	if err == nil {
		return ErrorNone
	}

	var violations validation.Violations
	if errors.As(err, &violations) {
		return ErrorValidation
	}

	if errors.Is(err, api.ErrNotFound) ||
		errors.Is(err, store.ErrUserNotFound) ||
		errors.Is(err, store.ErrMessageNotFound) {
		return ErrorNotFound
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrorTransport
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return ErrorTransport
	}

	return ErrorUnknown
}
