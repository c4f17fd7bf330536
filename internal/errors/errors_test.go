package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestFrameError(t *testing.T) {
	err := NewFrameError("invalid character 'x'", 12)

	expected := "malformed frame (12 bytes): invalid character 'x'"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}

	if !errors.Is(err, ErrMalformedFrame) {
		t.Error("Expected FrameError to match ErrMalformedFrame")
	}

	if !err.Is(NewFrameError("other", 1)) {
		t.Error("Expected FrameError to match another FrameError")
	}

	if errors.Is(err, ErrConnectionClosed) {
		t.Error("Expected FrameError not to match ErrConnectionClosed")
	}
}

func TestFrameError_NoMessage(t *testing.T) {
	err := NewFrameError("", 3)
	if err.Error() != "malformed frame (3 bytes)" {
		t.Errorf("Error() = %s", err.Error())
	}
}

func TestConnectionError(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")

	tests := []struct {
		name string
		err  *ConnectionError
		want string
	}{
		{
			name: "with message",
			err:  NewConnectionError("ws://localhost:8080/ws", "handshake failed", cause),
			want: "connection error at ws://localhost:8080/ws: handshake failed",
		},
		{
			name: "falls back to cause",
			err:  NewConnectionError("ws://localhost:8080/ws", "", cause),
			want: "connection error at ws://localhost:8080/ws: dial tcp: connection refused",
		},
		{
			name: "no endpoint",
			err:  NewConnectionError("", "", nil),
			want: "connection error: connection closed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestConnectionError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("wrapped: %w", NewConnectionError("ws://x", "", cause))

	if !errors.Is(err, cause) {
		t.Error("Expected wrapped ConnectionError to unwrap to cause")
	}
	if !errors.Is(err, ErrConnectionClosed) {
		t.Error("Expected wrapped ConnectionError to match ErrConnectionClosed")
	}
	if !IsConnectionError(err) {
		t.Error("IsConnectionError() = false, want true")
	}
	if GetEndpoint(err) != "ws://x" {
		t.Errorf("GetEndpoint() = %q, want ws://x", GetEndpoint(err))
	}
}

func TestConfigError(t *testing.T) {
	err := NewConfigError("endpoint", "scheme must be ws or wss")

	if err.Error() != `invalid config "endpoint": scheme must be ws or wss` {
		t.Errorf("Error() = %s", err.Error())
	}
	if !IsConfigError(err) {
		t.Error("IsConfigError() = false, want true")
	}
	if IsFrameError(err) {
		t.Error("IsFrameError() = true, want false")
	}
}

func TestHelpers_Nil(t *testing.T) {
	if IsFrameError(nil) || IsConnectionError(nil) || IsConfigError(nil) {
		t.Error("helpers should report false for nil")
	}
	if GetEndpoint(nil) != "" {
		t.Error("GetEndpoint(nil) should be empty")
	}
}
