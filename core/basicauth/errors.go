package basicauth

import "errors"

// Error variables define the distinct failure modes of header decoding so the
// boundary layer can report precisely which part of the header was malformed.
var (
	// ErrMissingAuthorization indicates the Authorization header was absent or empty.
	ErrMissingAuthorization = errors.New("authorization header is missing")

	// ErrNotBasicScheme indicates the header does not carry the Basic scheme prefix.
	ErrNotBasicScheme = errors.New("authorization scheme is not Basic")

	// ErrMalformedEncoding indicates the credentials segment is not valid base64.
	ErrMalformedEncoding = errors.New("credentials are not valid base64")

	// ErrInvalidText indicates the decoded credentials are not valid UTF-8 text.
	ErrInvalidText = errors.New("decoded credentials are not valid UTF-8")

	// ErrMissingUsername indicates no username was present before the colon.
	ErrMissingUsername = errors.New("username must be provided in Basic auth")

	// ErrMissingPassword indicates no password was present after the colon.
	ErrMissingPassword = errors.New("password must be provided in Basic auth")
)
