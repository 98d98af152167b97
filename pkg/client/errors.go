package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// HTTPError represents a non-2xx HTTP response from the API.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// ErrorKind is the user-facing category of a failed request.
type ErrorKind int

const (
	KindGeneric ErrorKind = iota
	KindConfiguration
	KindConnectivity
	KindAuthorization
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindConnectivity:
		return "connectivity"
	case KindAuthorization:
		return "authorization"
	default:
		return "generic"
	}
}

// FetchError is returned by every Client method.
type FetchError struct {
	Op   string
	Kind ErrorKind
	Err  error
}

func newFetchError(op string, err error) *FetchError {
	return &FetchError{Op: op, Kind: Classify(err), Err: err}
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("client.%s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// UserMessage returns the localized message to show for this failure.
func (e *FetchError) UserMessage() string {
	return UserMessage(e.Kind)
}

var transientMarkers = []string{"network", "timeout", "fetch", "connection", "deadline exceeded", "eof"}

// IsTransient reports whether a request is worth re-issuing: network-looking
// failures and gateway errors (502, 503, 504).
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.StatusCode {
		case 502, 503, 504:
			return true
		}
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, m := range transientMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

// Classify maps a request failure to an ErrorKind.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindGeneric
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.StatusCode {
		case 401, 403:
			return KindAuthorization
		case 502, 503, 504:
			return KindConnectivity
		}
		return KindGeneric
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && isConfigurationMessage(urlErr.Err.Error()) {
		return KindConfiguration
	}
	if isConfigurationMessage(err.Error()) {
		return KindConfiguration
	}
	if IsTransient(err) {
		return KindConnectivity
	}
	return KindGeneric
}

func isConfigurationMessage(msg string) bool {
	msg = strings.ToLower(msg)
	return strings.Contains(msg, "unsupported protocol scheme") ||
		strings.Contains(msg, "no host in request") ||
		strings.Contains(msg, "invalid url") ||
		strings.Contains(msg, "missing protocol scheme")
}

// UserMessage returns the French message shown for a failure kind.
func UserMessage(kind ErrorKind) string {
	switch kind {
	case KindConfiguration:
		return "Le service est mal configuré. Veuillez réessayer plus tard."
	case KindConnectivity:
		return "Impossible de joindre le serveur. Vérifiez votre connexion internet."
	case KindAuthorization:
		return "Vous n'avez pas l'autorisation d'accéder à ces données."
	default:
		return "Une erreur est survenue lors du chargement des données."
	}
}
