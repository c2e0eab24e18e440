package media

import (
	"fmt"
	"strings"

	perr "marquee/internal/platform/errors"
)

// Kind is the media resource kind. Only KindMovie and KindTV are valid
type Kind string

const (
	// KindMovie is a feature film
	KindMovie Kind = "movie"
	// KindTV is a television series
	KindTV Kind = "tv"
)

// Kinds lists the supported kinds in dispatch order
var Kinds = []Kind{KindMovie, KindTV}

// Valid reports whether k is movie or tv
func (k Kind) Valid() bool { return k == KindMovie || k == KindTV }

func (k Kind) String() string { return string(k) }

// UnsupportedKindError is returned when a caller passes a kind outside {movie, tv}
type UnsupportedKindError struct {
	Kind string
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("unsupported media kind %q", e.Kind)
}

// Code maps the error onto the project taxonomy
func (e *UnsupportedKindError) Code() perr.ErrorCode { return perr.ErrorCodeInvalidArgument }

// Unwrap exposes a perr value so HTTP mapping and errors.As work uniformly
func (e *UnsupportedKindError) Unwrap() error {
	return perr.New(perr.ErrorCodeInvalidArgument, e.Error())
}

// ParseKind parses untrusted input into a Kind
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", &UnsupportedKindError{Kind: s}
	}
	return k, nil
}

// Check returns an UnsupportedKindError for invalid kinds
func Check(k Kind) error {
	if !k.Valid() {
		return &UnsupportedKindError{Kind: string(k)}
	}
	return nil
}
