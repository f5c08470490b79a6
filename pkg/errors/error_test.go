package errors

import (
	"errors"
	"testing"
)

func TestErrorCode_Message(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{Success, "Success"},
		{InvalidParams, "Invalid parameters"},
		{JudgeQueueFull, "Judge queue is full"},
		{TimeLimitExceeded, "Time limit exceeded"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.code.Message(); got != tt.want {
				t.Errorf("Message() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code       ErrorCode
		wantStatus int
	}{
		{Success, 200},
		{InvalidParams, 400},
		{ValidationFailed, 400},
		{NotFound, 404},
		{TooManyRequests, 429},
		{PayloadTooLarge, 413},
		{InternalServerError, 500},
		{JudgeSystemError, 500},
	}
	for _, tt := range tests {
		t.Run(tt.code.Message(), func(t *testing.T) {
			if got := tt.code.HTTPStatus(); got != tt.wantStatus {
				t.Errorf("HTTPStatus() = %v, want %v", got, tt.wantStatus)
			}
		})
	}
}

func TestNewAndWrap(t *testing.T) {
	err := New(CompilationError)
	if err.Code != CompilationError {
		t.Fatalf("Code = %v, want %v", err.Code, CompilationError)
	}
	if err.Error() != CompilationError.Message() {
		t.Fatalf("Error() = %v, want %v", err.Error(), CompilationError.Message())
	}

	cause := errors.New("boom")
	wrapped := Wrap(cause, JudgeSystemError)
	if wrapped.Err != cause {
		t.Fatalf("Wrap did not preserve cause")
	}
	if !Is(wrapped, JudgeSystemError) {
		t.Fatalf("Is() should match the wrapping code")
	}
}

func TestWithDetail(t *testing.T) {
	err := ValidationError("timeLimit", "must be 1..10").WithDetail("field", "timeLimit")
	if err.Details["field"] != "timeLimit" {
		t.Fatalf("WithDetail did not set the detail")
	}
}

func TestGetCodeFromPlainError(t *testing.T) {
	plain := errors.New("unexpected")
	if got := GetCode(plain); got != InternalServerError {
		t.Fatalf("GetCode(plain) = %v, want %v", got, InternalServerError)
	}
}
