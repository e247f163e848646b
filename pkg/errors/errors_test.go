package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := Wrap(CodeDependency, cause, "load coupon")

	if err.Unwrap() != cause {
		t.Fatalf("expected cause to be preserved")
	}
	if err.Code() != CodeDependency {
		t.Fatalf("expected code %s, got %s", CodeDependency, err.Code())
	}
	if got := err.Error(); got != "DEPENDENCY_ERROR: load coupon" {
		t.Fatalf("unexpected error string %q", got)
	}
}

func TestAsResolvesWrappedError(t *testing.T) {
	inner := New(CodeNotFound, "coupon not found")
	outer := fmt.Errorf("handler: %w", inner)

	typed := As(outer)
	if typed == nil {
		t.Fatalf("expected typed error")
	}
	if typed.Code() != CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %s", typed.Code())
	}
}

func TestMetadataMapping(t *testing.T) {
	cases := []struct {
		code   Code
		status int
	}{
		{CodeValidation, http.StatusUnprocessableEntity},
		{CodeNotFound, http.StatusNotFound},
		{CodeStateConflict, http.StatusConflict},
		{CodeIntegrity, http.StatusInternalServerError},
		{CodeUnauthorized, http.StatusUnauthorized},
		{Code("BOGUS"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := MetadataFor(tc.code).HTTPStatus; got != tc.status {
			t.Errorf("%s: expected status %d, got %d", tc.code, tc.status, got)
		}
	}
}

func TestIsCode(t *testing.T) {
	err := New(CodeStateConflict, "no coupon applied")
	if !IsCode(err, CodeStateConflict) {
		t.Fatalf("expected IsCode to match")
	}
	if IsCode(err, CodeNotFound) {
		t.Fatalf("expected IsCode mismatch")
	}
	if IsCode(nil, CodeNotFound) {
		t.Fatalf("nil error should not match")
	}
}
