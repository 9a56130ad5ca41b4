package auth

import "fmt"

// Kind classifies authentication failures
type Kind int

const (
	// KindNetwork is a transport failure or an unexpected server status
	KindNetwork Kind = iota + 1
	// KindInvalidCredentials means the server rejected the login
	KindInvalidCredentials
	// KindValidationFailed means registration fields were rejected
	KindValidationFailed
	// KindNoRefreshToken means there is no stored refresh token
	KindNoRefreshToken
	// KindRefreshFailed means the refresh call did not yield a new access token
	KindRefreshFailed
	// KindDecode means the server answered with an unrecognized shape
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindValidationFailed:
		return "validation_failed"
	case KindNoRefreshToken:
		return "no_refresh_token"
	case KindRefreshFailed:
		return "refresh_failed"
	case KindDecode:
		return "decode"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Sentinels for errors.Is. Any *Error of the same kind matches.
var (
	ErrNetwork            = &Error{Kind: KindNetwork, Message: "network error"}
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials, Message: "invalid credentials"}
	ErrValidationFailed   = &Error{Kind: KindValidationFailed, Message: "validation failed"}
	ErrNoRefreshToken     = &Error{Kind: KindNoRefreshToken, Message: "no refresh token available"}
	ErrRefreshFailed      = &Error{Kind: KindRefreshFailed, Message: "token refresh failed"}
	ErrDecode             = &Error{Kind: KindDecode, Message: "unexpected response format"}
)

// Error is an authentication error carrying a user-displayable message
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error with the same kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func newError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}
