package service

import (
	"errors"
	"fmt"
)

// Domain errors for user and todo flows.
var (
	ErrEmailTaken = errors.New("email already registered")
	ErrNotFound   = errors.New("not found")
)

// AuthErrorKind names why a request could not be authenticated.
type AuthErrorKind string

const (
	KindMissingCredential  AuthErrorKind = "missing_credential"
	KindInvalidSignature   AuthErrorKind = "invalid_signature"
	KindExpired            AuthErrorKind = "expired"
	KindMalformed          AuthErrorKind = "malformed"
	KindUnknownSubject     AuthErrorKind = "unknown_subject"
	KindInvalidCredentials AuthErrorKind = "invalid_credentials"
)

// AuthError is returned by token verification, identity resolution and login.
// errors.Is matches on Kind, so the sentinels below can be used as targets.
type AuthError struct {
	Kind AuthErrorKind
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth: %s: %v", e.Kind, e.Err)
	}
	return "auth: " + string(e.Kind)
}

func (e *AuthError) Unwrap() error { return e.Err }

func (e *AuthError) Is(target error) bool {
	t, ok := target.(*AuthError)
	return ok && t.Kind == e.Kind
}

var (
	ErrMissingCredential  = &AuthError{Kind: KindMissingCredential}
	ErrInvalidSignature   = &AuthError{Kind: KindInvalidSignature}
	ErrTokenExpired       = &AuthError{Kind: KindExpired}
	ErrMalformedToken     = &AuthError{Kind: KindMalformed}
	ErrUnknownSubject     = &AuthError{Kind: KindUnknownSubject}
	ErrInvalidCredentials = &AuthError{Kind: KindInvalidCredentials}
)

func authError(kind AuthErrorKind, cause error) *AuthError {
	return &AuthError{Kind: kind, Err: cause}
}

// ValidationError reports input rejected before reaching storage.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
