package net_test

import (
	"net/http"
	"testing"

	perr "marquee/internal/platform/errors"
	pnet "marquee/internal/platform/net"
)

func TestReply(t *testing.T) {
	status, w := pnet.Reply(http.StatusCreated, map[string]int{"fetched": 1}, "rid-1")
	if status != http.StatusCreated || w.StatusCode != status || w.Status != "Created" {
		t.Fatalf("reply = %d %+v", status, w)
	}
	if w.RequestID != "rid-1" || w.Code != 0 || w.Error != "" {
		t.Fatalf("success envelope carries error fields: %+v", w)
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   perr.ErrorCode
	}{
		{"nil is ok", nil, http.StatusOK, 0},
		{"not found", perr.NotFoundf("listing %s not found", "x"), http.StatusNotFound, perr.ErrorCodeNotFound},
		{"upstream limit", perr.Newf(perr.ErrorCodeTooManyRequests, "slow down"), http.StatusTooManyRequests, perr.ErrorCodeTooManyRequests},
		{"bad kind", perr.InvalidArgf("kind must be movie or tv"), http.StatusUnprocessableEntity, perr.ErrorCodeInvalidArgument},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, w := pnet.Error(tc.err, "rid")
			if status != tc.status || w.StatusCode != tc.status || w.Code != tc.code {
				t.Fatalf("Error = %d %+v", status, w)
			}
			if tc.err != nil && w.Error == "" {
				t.Fatalf("message missing")
			}
		})
	}
}
