package ln

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig marks missing or invalid backend configuration. Fatal at
	// startup, never a runtime fallback.
	ErrConfig = errors.New("invalid backend configuration")
	// ErrCredential marks a malformed macaroon or certificate. Fatal at
	// construction.
	ErrCredential = errors.New("invalid credential")
	// ErrUnreachable marks a transport-level failure talking to the backend.
	ErrUnreachable = errors.New("backend unreachable")
	// ErrProtocol marks a backend response missing required fields.
	ErrProtocol = errors.New("backend protocol error")
	// ErrDecode marks a bolt11 string the backend does not recognize.
	ErrDecode = errors.New("invoice decode failed")
	// ErrUnsupported marks an operation the configured backend cannot
	// perform. Surfaced explicitly, never silently a no-op.
	ErrUnsupported = errors.New("operation not supported by this backend")
)

// PaymentError is an explicit payment failure reported by the backend,
// distinguished from transport failure.
type PaymentError struct {
	Reason string
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("payment failed: %s", e.Reason)
}
