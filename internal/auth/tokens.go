package auth

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// TokenPair is the access/refresh pair issued by the auth endpoints
type TokenPair struct {
	Access  string
	Refresh string
}

// Accepted names for each token, in lookup order
var (
	accessFields  = []string{"access", "access_token"}
	refreshFields = []string{"refresh", "refresh_token"}
)

// DecodeTokenPair parses a token response body.
//
// The body must be a JSON object. Each token may appear under either of its accepted
// names; the values must be strings (or null). Both names carrying different values is
// rejected. Other keys, such as "detail", are ignored. Absent tokens decode as "".
func DecodeTokenPair(data []byte) (TokenPair, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return TokenPair{}, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return TokenPair{}, newError(KindDecode, "unexpected token response: expected a JSON object", err)
	}

	access, err := pickToken(fields, accessFields)
	if err != nil {
		return TokenPair{}, err
	}

	refresh, err := pickToken(fields, refreshFields)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{Access: access, Refresh: refresh}, nil
}

func pickToken(fields map[string]json.RawMessage, names []string) (string, error) {
	var value, from string

	for _, name := range names {
		raw, ok := fields[name]
		if !ok {
			continue
		}

		var s *string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", newError(KindDecode, fmt.Sprintf("unexpected token response: %q must be a string", name), err)
		}
		if s == nil || *s == "" {
			continue
		}

		if value != "" && value != *s {
			return "", newError(KindDecode,
				fmt.Sprintf("unexpected token response: %q and %q disagree", from, name),
				errors.New("conflicting token fields"))
		}
		value, from = *s, name
	}

	return value, nil
}
