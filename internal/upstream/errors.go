package upstream

import (
	"errors"
	"fmt"
	"net/url"
)

// Classification kinds for a 2xx body that is not usable JSON.
var (
	ErrEmptyResponse = errors.New("empty response")
	ErrHTMLResponse  = errors.New("unexpected HTML response")
	ErrMalformedJSON = errors.New("malformed JSON response")
)

// ClassificationError reports a body that failed classification. Kind is one
// of ErrEmptyResponse, ErrHTMLResponse or ErrMalformedJSON.
type ClassificationError struct {
	Source string
	Kind   error
	Body   string
	Err    error
}

func (e *ClassificationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v: %v", e.Source, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Source, e.Kind)
}

func (e *ClassificationError) Unwrap() error {
	return e.Kind
}

// Message is the caller-facing description of the failure.
func (e *ClassificationError) Message() string {
	switch e.Kind {
	case ErrEmptyResponse:
		return fmt.Sprintf("Empty response from %s API", e.Source)
	case ErrHTMLResponse:
		return fmt.Sprintf("Received HTML response from %s API", e.Source)
	default:
		return fmt.Sprintf("Invalid JSON response from %s API", e.Source)
	}
}

// UnavailableError covers transport failures (StatusCode 0) and non-2xx
// replies that carried a body.
type UnavailableError struct {
	Source     string
	StatusCode int
	Body       string
	Err        error
}

func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s unavailable: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("%s returned status %d: %s", e.Source, e.StatusCode, e.Body)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// HasStatus reports whether the upstream actually answered.
func (e *UnavailableError) HasStatus() bool {
	return e.StatusCode != 0
}

// Cause describes err without the request URL that *url.Error carries, for
// use in caller-facing bodies.
func Cause(err error) string {
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err.Error()
	}
	var unavailable *UnavailableError
	if errors.As(err, &unavailable) && unavailable.Err != nil {
		return unavailable.Err.Error()
	}
	return err.Error()
}

// BusinessError is a well-formed upstream reply that signals failure.
// Response holds the parsed reply, which need not be an object.
type BusinessError struct {
	Source   string
	Message  string
	Response interface{}
}

func (e *BusinessError) Error() string {
	return fmt.Sprintf("%s rejected the request: %s", e.Source, e.Message)
}
