package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an application error so the HTTP layer can map it to a
// status code without inspecting error strings.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindUpstreamProvider
	KindAuthorization
	KindRateLimited
)

type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewValidation(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func NewNotFound(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func NewUpstreamProvider(message string, err error) *AppError {
	return &AppError{Kind: KindUpstreamProvider, Message: message, Err: err}
}

func NewAuthorization(message string) *AppError {
	return &AppError{Kind: KindAuthorization, Message: message}
}

func NewRateLimited(message string) *AppError {
	return &AppError{Kind: KindRateLimited, Message: message}
}

// IsKind reports whether err is an AppError of the given kind anywhere in its
// chain.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

func IsValidation(err error) bool       { return IsKind(err, KindValidation) }
func IsNotFound(err error) bool         { return IsKind(err, KindNotFound) }
func IsUpstreamProvider(err error) bool { return IsKind(err, KindUpstreamProvider) }
func IsAuthorization(err error) bool    { return IsKind(err, KindAuthorization) }
func IsRateLimited(err error) bool      { return IsKind(err, KindRateLimited) }
