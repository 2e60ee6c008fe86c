package upstream

import (
	"fmt"
)

// Kind classifies why a dependency call failed. The set is closed: every
// failed Fetch returns exactly one of these.
type Kind int

const (
	// KindUnreachable means no HTTP exchange completed: connection refused,
	// DNS or TLS failure, timeout, cancelled context.
	KindUnreachable Kind = iota + 1

	// KindRejected means the dependency answered with a non-2xx status.
	KindRejected

	// KindMalformed means a 2xx body could not be decoded into the payload
	// schema.
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindUnreachable:
		return "unreachable"
	case KindRejected:
		return "rejected"
	case KindMalformed:
		return "malformed"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// FetchError is the only error type Fetch returns.
type FetchError struct {
	Kind       Kind
	Dependency string
	URL        string

	// Status is the observed HTTP status, set for KindRejected only.
	Status int

	// Err is the transport or decode error, nil for KindRejected.
	Err error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case KindRejected:
		return fmt.Sprintf("%s: %s rejected with status %d", e.Dependency, e.URL, e.Status)
	default:
		return fmt.Sprintf("%s: %s %s: %v", e.Dependency, e.URL, e.Kind, e.Err)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
