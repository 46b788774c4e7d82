package basicauth

import (
	"encoding/base64"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// scheme is the authentication scheme prefix required by Decode.
const scheme = "Basic "

// Credentials is a transient username/password pair extracted from an
// Authorization header. It is never persisted and the password is redacted
// when logged through slog.
type Credentials struct {
	Username string
	Password string
}

// LogValue implements slog.LogValuer, redacting the password so credentials
// can be passed to structured logging without leaking secrets.
func (c Credentials) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("username", c.Username),
		slog.String("password", "[REDACTED]"),
	)
}

// Decode parses an Authorization header value carrying the Basic scheme into
// Credentials. Each failure mode returns its own sentinel error; the decoded
// secret is never included in any returned error.
func Decode(header string) (Credentials, error) {
	if header == "" {
		return Credentials{}, ErrMissingAuthorization
	}

	encoded, ok := strings.CutPrefix(header, scheme)
	if !ok {
		return Credentials{}, ErrNotBasicScheme
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return Credentials{}, errors.Join(ErrMalformedEncoding, err)
	}
	if !utf8.Valid(decoded) {
		return Credentials{}, ErrInvalidText
	}

	// Only the first colon separates the pair; passwords may contain colons.
	username, password, found := strings.Cut(string(decoded), ":")
	if username == "" {
		return Credentials{}, ErrMissingUsername
	}
	if !found || password == "" {
		return Credentials{}, ErrMissingPassword
	}

	return Credentials{Username: username, Password: password}, nil
}

// Encode builds a Basic scheme Authorization header value from the given pair.
// It is the exact inverse of Decode for any username without a colon.
func Encode(username, password string) string {
	return scheme + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}
