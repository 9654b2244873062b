package errors

import (
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrorTypeNetwork, "connection reset")
	if got := err.Error(); got != "network error: connection reset" {
		t.Errorf("Unexpected message: %s", got)
	}

	coded := WithCode(ErrorTypeNetwork, 503, "unexpected status code: 503")
	if got := coded.Error(); got != "network error (code 503): unexpected status code: 503" {
		t.Errorf("Unexpected message: %s", got)
	}
}

func TestNewf(t *testing.T) {
	err := Newf(ErrorTypeParse, "payload is not an image (%s)", "text/html")
	if err.Type != ErrorTypeParse {
		t.Errorf("Expected parse type, got %s", err.Type)
	}
	if err.Message != "payload is not an image (text/html)" {
		t.Errorf("Unexpected message: %s", err.Message)
	}
}

func TestIsType(t *testing.T) {
	err := New(ErrorTypeInvalidArgument, "query must not be empty")

	if !IsType(err, ErrorTypeInvalidArgument) {
		t.Error("Expected IsType to match the error's own type")
	}
	if IsType(err, ErrorTypeNetwork) {
		t.Error("Expected IsType to reject a different type")
	}
	if IsType(fmt.Errorf("plain error"), ErrorTypeNetwork) {
		t.Error("Expected IsType to reject untyped errors")
	}
	if IsType(nil, ErrorTypeNetwork) {
		t.Error("Expected IsType to reject nil")
	}
}

func TestIsTypeThroughWrapping(t *testing.T) {
	inner := WithCode(ErrorTypeNetwork, 503, "unexpected status code: 503")
	wrapped := fmt.Errorf("search endpoint unreachable: %w", inner)

	if !IsType(wrapped, ErrorTypeNetwork) {
		t.Error("Expected IsType to see through fmt.Errorf wrapping")
	}
	if TypeOf(wrapped) != ErrorTypeNetwork {
		t.Errorf("Expected network type, got %s", TypeOf(wrapped))
	}
}

func TestTypeOfUntyped(t *testing.T) {
	if TypeOf(fmt.Errorf("plain")) != ErrorTypeUnknown {
		t.Error("Expected unknown type for untyped errors")
	}
}
