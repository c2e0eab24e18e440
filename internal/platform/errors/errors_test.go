package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCode(t *testing.T) {
	cases := map[ErrorCode]int{
		ErrorCodeUnknown:         http.StatusInternalServerError,
		ErrorCodePanic:           http.StatusInternalServerError,
		ErrorCodeUnavailable:     http.StatusServiceUnavailable,
		ErrorCodeTooManyRequests: http.StatusTooManyRequests,
		ErrorCodeConflict:        http.StatusConflict,
		ErrorCodeUnauthorized:    http.StatusUnauthorized,
		ErrorCodeInvalidArgument: http.StatusUnprocessableEntity,
		ErrorCodeValidation:      http.StatusBadRequest,
		ErrorCodeJSON:            http.StatusBadRequest,
		ErrorCodeNotFound:        http.StatusNotFound,
		ErrorCodeUpstream:        http.StatusBadGateway,
		ErrorCode(999):           http.StatusInternalServerError,
	}
	for code, want := range cases {
		if got := HTTPStatusCode(code); got != want {
			t.Fatalf("HTTPStatusCode(%d) = %d, want %d", code, got, want)
		}
	}
}

func TestWireCodesAreStable(t *testing.T) {
	if ErrorCodeInvalidArgument != 6 || ErrorCodeValidation != 7 || ErrorCodeNotFound != 9 || ErrorCodeUpstream != 10 {
		t.Fatalf("error codes moved")
	}
}

func TestError_WrapAndWire(t *testing.T) {
	cause := stderrs.New("status 503")
	err := Wrap(cause, ErrorCodeUnavailable, "catalog unavailable")

	if err.Error() != "catalog unavailable: status 503" {
		t.Fatalf("Error() = %q", err.Error())
	}
	if !stderrs.Is(err, cause) {
		t.Fatalf("cause not reachable")
	}
	w := WireFrom(fmt.Errorf("details: %w", err))
	if w.Code != ErrorCodeUnavailable || w.Message != "catalog unavailable" {
		t.Fatalf("wire = %+v", w)
	}
	if HTTPStatus(err) != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", HTTPStatus(err))
	}
}

func TestWireFrom_ForeignAndNil(t *testing.T) {
	if w := WireFrom(nil); w != (Wire{}) {
		t.Fatalf("nil wire = %+v", w)
	}
	if w := WireFrom(stderrs.New("boom")); w.Code != ErrorCodeUnknown || w.Message != "boom" {
		t.Fatalf("foreign wire = %+v", w)
	}
	var e *Error
	if e.Error() != "<nil>" {
		t.Fatalf("nil receiver")
	}
}

func TestWithField_CopyOnWrite(t *testing.T) {
	base := InvalidArgf("id must be a positive integer")
	withID := WithField(base, "id")

	e, ok := As(withID)
	if !ok || e.Field() != "id" || e.Code() != ErrorCodeInvalidArgument {
		t.Fatalf("WithField = %+v", e)
	}
	if b, _ := As(base); b.Field() != "" {
		t.Fatalf("original mutated")
	}
	if w := WireFrom(withID); w.Field != "id" {
		t.Fatalf("wire field = %q", w.Field)
	}
	foreign := stderrs.New("x")
	if WithField(foreign, "id") != foreign {
		t.Fatalf("foreign error should pass through")
	}
}

func TestConstructors(t *testing.T) {
	cases := []struct {
		err  error
		code ErrorCode
		msg  string
	}{
		{New(ErrorCodeConflict, "listing closed"), ErrorCodeConflict, "listing closed"},
		{Newf(ErrorCodeUpstream, "catalog answered %d", 500), ErrorCodeUpstream, "catalog answered 500"},
		{NotFoundf("movie %d not found", 5), ErrorCodeNotFound, "movie 5 not found"},
		{InvalidArgf("kind %q", "game"), ErrorCodeInvalidArgument, `kind "game"`},
		{JSONErrf("empty body"), ErrorCodeJSON, "empty body"},
		{PanicErrf("internal error"), ErrorCodePanic, "internal error"},
	}
	for _, c := range cases {
		if CodeOf(c.err) != c.code || c.err.Error() != c.msg || !IsCode(c.err, c.code) {
			t.Fatalf("%v: code %v", c.err, CodeOf(c.err))
		}
	}
	if CodeOf(stderrs.New("x")) != ErrorCodeUnknown {
		t.Fatalf("foreign code")
	}
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestIsRetryable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"unavailable", New(ErrorCodeUnavailable, "catalog down"), true},
		{"rate limited", New(ErrorCodeTooManyRequests, "slow down"), true},
		{"not found", NotFoundf("movie 5"), false},
		{"canceled", context.Canceled, false},
		{"wrapped cancel", Wrap(context.Canceled, ErrorCodeUnavailable, "catalog"), false},
		{"deadline", fmt.Errorf("fetch: %w", context.DeadlineExceeded), true},
		{"net timeout", Wrap(timeoutErr{}, ErrorCodeUnknown, "dial"), true},
		{"plain", stderrs.New("boom"), false},
	}
	for _, c := range cases {
		if got := IsRetryable(c.err); got != c.want {
			t.Fatalf("%s: IsRetryable = %v, want %v", c.name, got, c.want)
		}
	}
}
