package scout

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates a config or message failed validation.
	ErrValidation = errors.New("validation error")

	// ErrEmptyMessage indicates a send was attempted with blank text.
	ErrEmptyMessage = fmt.Errorf("message is empty: %w", ErrValidation)

	// ErrNoChat indicates there is no live chat handle to send on.
	ErrNoChat = errors.New("no chat session")

	// ErrStreamClosed indicates an operation on a closed stream.
	ErrStreamClosed = errors.New("stream closed")
)

// Banner texts shown to the user in place of raw errors.
const (
	initFailedText   = "Failed to initialize AI session. Check API Key."
	streamFailedText = "An error occurred while fetching data."
)

// InitializationError reports that the provider rejected a chat
// configuration, for example because the API key is missing.
type InitializationError struct {
	Err error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("initialize chat: %v", e.Err)
}

func (e *InitializationError) Unwrap() error { return e.Err }

// StreamError reports that a send failed, either before the first fragment
// arrived or mid-stream.
type StreamError struct {
	Err error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("stream: %v", e.Err)
}

func (e *StreamError) Unwrap() error { return e.Err }

// asInitializationError wraps err unless it already is an InitializationError.
func asInitializationError(err error) error {
	var ie *InitializationError
	if errors.As(err, &ie) {
		return err
	}
	return &InitializationError{Err: err}
}

// asStreamError wraps err unless it already is a StreamError.
func asStreamError(err error) error {
	var se *StreamError
	if errors.As(err, &se) {
		return err
	}
	return &StreamError{Err: err}
}

// bannerText returns the user-facing text for a failed send.
func bannerText(err error) string {
	var se *StreamError
	if errors.As(err, &se) {
		err = se.Err
	}
	if err == nil || err.Error() == "" {
		return streamFailedText
	}
	return err.Error()
}
