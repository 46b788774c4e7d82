// Package basicauth parses and builds HTTP Basic authentication header values.
//
// The package deliberately reports each decoding failure as a distinct sentinel
// error so callers can log precisely what was wrong with an inbound header,
// while the decoded secret itself is never exposed through logging: Credentials
// implements slog.LogValuer and redacts the password.
//
// # Usage
//
//	creds, err := basicauth.Decode(r.Header.Get("Authorization"))
//	if err != nil {
//		// Map to 401 with WWW-Authenticate at the boundary layer.
//	}
//
// The password may contain colons; only the first colon separates the username
// from the password, per RFC 7617.
package basicauth
