package llm

import (
	"context"
	"errors"
	"testing"
)

func TestMockCompleterFIFO(t *testing.T) {
	mock := NewMockCompleter(
		MockResponse{Content: "primero"},
		MockResponse{Content: "segundo"},
	)

	res, err := mock.Complete(context.Background(), Request{Model: "a"})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if res.Content != "primero" {
		t.Errorf("Content = %q, want 'primero'", res.Content)
	}

	res, err = mock.Complete(context.Background(), Request{Model: "b"})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if res.Content != "segundo" {
		t.Errorf("Content = %q, want 'segundo'", res.Content)
	}

	// Drained queue signals unavailability.
	_, err = mock.Complete(context.Background(), Request{Model: "c"})
	var unavailable *ErrUnavailable
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}

	if mock.CallCount() != 3 {
		t.Errorf("CallCount = %d, want 3", mock.CallCount())
	}
	if mock.Calls[0].Model != "a" || mock.Calls[1].Model != "b" || mock.Calls[2].Model != "c" {
		t.Errorf("recorded calls out of order: %+v", mock.Calls)
	}
}

func TestMockCompleterError(t *testing.T) {
	boom := &ErrBadResponse{Err: errors.New("boom")}
	mock := NewMockCompleter(MockResponse{Err: boom})

	_, err := mock.Complete(context.Background(), Request{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected canned error, got %v", err)
	}
}
