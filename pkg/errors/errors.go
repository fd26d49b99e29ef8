// Package errors provides the error taxonomy for the pubcheck system.
// Fatal conditions (missing configuration, catalog collection failures,
// active-version lookups) carry typed errors that identify which
// collaborator and which data item failed; absence of a publication is
// never an error and is reported as an ordinary result value.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the pubcheck system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrAPIKeyRequired indicates that an API key is required but not provided
	ErrAPIKeyRequired = errors.New("API key required")

	// ErrNoPublications indicates that no local model is published to the
	// remote registry. It is surfaced only when the fail-on-no-publish
	// policy is enabled; otherwise an unpublished run is a success.
	ErrNoPublications = errors.New("no models published")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// ConfigError represents a missing or invalid configuration value,
// detected before any network call is made.
type ConfigError struct {
	Component string // "dataiku", "wandb", ...
	Variable  string // the environment variable or flag at fault
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Variable != "" {
		return fmt.Sprintf("configuration error in %s: %s: %s", e.Component, e.Variable, e.Message)
	}
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, variable, message string) *ConfigError {
	return &ConfigError{Component: component, Variable: variable, Message: message}
}

// APIError represents an error response from a collaborator API.
type APIError struct {
	Platform   string // "dataiku" or "wandb"
	StatusCode int
	Endpoint   string
	Message    string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error from %s (status %d): %s", e.Platform, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error from %s: %s", e.Platform, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *APIError) Unwrap() error {
	return e.Err
}

// NewAPIError creates a new APIError
func NewAPIError(platform string, statusCode int, message string) *APIError {
	return &APIError{Platform: platform, StatusCode: statusCode, Message: message}
}

// CollectionError represents a failure to enumerate the remote artifact
// catalog. It is fatal to the run; no partial artifact set feeds the
// verdict. Collection names which remote call failed so an operator can
// tell a broken registry from an empty one.
type CollectionError struct {
	Call       string // "list collections", "list artifacts", ...
	Collection string // set when the failure is scoped to one collection
	Err        error
}

// Error implements the error interface
func (e *CollectionError) Error() string {
	if e.Collection != "" {
		return fmt.Sprintf("artifact catalog: %s failed for collection %s: %v", e.Call, e.Collection, e.Err)
	}
	return fmt.Sprintf("artifact catalog: %s failed: %v", e.Call, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *CollectionError) Unwrap() error {
	return e.Err
}

// NewCollectionError creates a new CollectionError
func NewCollectionError(call, collection string, err error) *CollectionError {
	return &CollectionError{Call: call, Collection: collection, Err: err}
}

// LookupError represents a failure to resolve a local model's active
// version. The engine requires every model's identifier to be
// computable, so a lookup failure aborts the run.
type LookupError struct {
	Resource string // "saved model", "active version"
	ID       string
	Err      error
}

// Error implements the error interface
func (e *LookupError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to resolve %s %s: %v", e.Resource, e.ID, e.Err)
	}
	return fmt.Sprintf("failed to resolve %s: %v", e.Resource, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *LookupError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *LookupError) Is(target error) bool {
	return target == ErrNotFound
}

// NewLookupError creates a new LookupError
func NewLookupError(resource, id string, err error) *LookupError {
	return &LookupError{Resource: resource, ID: id, Err: err}
}

// AuthenticationError represents an authentication failure against one
// of the two platforms.
type AuthenticationError struct {
	Platform string
	Method   string // "api_key", "basic", ...
	Message  string
	Err      error
}

// Error implements the error interface
func (e *AuthenticationError) Error() string {
	if e.Platform != "" {
		return fmt.Sprintf("authentication error for %s (%s): %s", e.Platform, e.Method, e.Message)
	}
	return fmt.Sprintf("authentication error (%s): %s", e.Method, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrAPIKeyRequired
}

// ParseError represents an error when decoding a collaborator response.
type ParseError struct {
	Format  string // "json", "graphql"
	Source  string // what was being decoded
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("parse error in %s %s: %s", e.Format, e.Source, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Helper wrapping functions for common patterns

// WrapParse wraps an error as a ParseError
func WrapParse(format, source string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, Source: source, Message: err.Error(), Err: err}
}

// WrapCollection wraps an error as a CollectionError
func WrapCollection(call, collection string, err error) error {
	if err == nil {
		return nil
	}
	return NewCollectionError(call, collection, err)
}

// WrapLookup wraps an error as a LookupError
func WrapLookup(resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewLookupError(resource, id, err)
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConfigError checks if an error originated in configuration validation
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// IsCollectionError checks if an error originated in catalog collection
func IsCollectionError(err error) bool {
	var ce *CollectionError
	return errors.As(err, &ce)
}

// IsNoPublications checks if an error is the no-publications policy signal
func IsNoPublications(err error) bool {
	return errors.Is(err, ErrNoPublications)
}

// IsAPIKeyError checks if an error is related to API keys
func IsAPIKeyError(err error) bool {
	return errors.Is(err, ErrAPIKeyRequired)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}
