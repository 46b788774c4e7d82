package subscriber

import (
	"strings"
	"unicode/utf8"
)

// maxNameLength bounds subscriber names; counted in runes, not bytes.
const maxNameLength = 256

// forbiddenNameCharacters are rejected wholesale rather than escaped.
const forbiddenNameCharacters = `/()"<>\{}`

// Name is a validated subscriber display name.
type Name string

// NewName validates and returns a subscriber name. A valid name is non-empty
// after trimming, at most 256 characters long, and free of characters that
// could be abused in rendered output.
func NewName(value string) (Name, error) {
	if strings.TrimSpace(value) == "" {
		return "", ErrEmptyName
	}
	if utf8.RuneCountInString(value) > maxNameLength {
		return "", ErrNameTooLong
	}
	if strings.ContainsAny(value, forbiddenNameCharacters) {
		return "", ErrForbiddenCharacters
	}
	return Name(value), nil
}

// String returns the underlying name value.
func (n Name) String() string { return string(n) }
