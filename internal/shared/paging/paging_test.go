package paging

import (
	"errors"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestNewAppliesDefaults(t *testing.T) {
	page, err := New(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Skip != 0 || page.Limit != 100 {
		t.Fatalf("expected 0/100, got %d/%d", page.Skip, page.Limit)
	}
}

func TestNewRejectsNegative(t *testing.T) {
	if _, err := New(intPtr(-1), nil); !errors.Is(err, ErrInvalidPage) {
		t.Fatalf("expected ErrInvalidPage, got %v", err)
	}
	if _, err := New(nil, intPtr(-5)); !errors.Is(err, ErrInvalidPage) {
		t.Fatalf("expected ErrInvalidPage, got %v", err)
	}
}

func TestWindowClampsToLength(t *testing.T) {
	start, end := Page{Skip: 2, Limit: 10}.Window(5)
	if start != 2 || end != 5 {
		t.Fatalf("expected [2,5), got [%d,%d)", start, end)
	}
	start, end = Page{Skip: 9, Limit: 10}.Window(5)
	if start != 5 || end != 5 {
		t.Fatalf("expected empty window, got [%d,%d)", start, end)
	}
}
