package pagination

import "testing"

func TestNew_LastPartialPage(t *testing.T) {
	meta, skip := New(25, 3, 10)
	if meta.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", meta.TotalPages)
	}
	if skip != 20 {
		t.Fatalf("expected skip 20, got %d", skip)
	}
	if meta.CurrentPage != 3 || meta.TotalItems != 25 || meta.ItemsPerPage != 10 {
		t.Fatalf("unexpected meta: %+v", meta)
	}
}

func TestNew_PageBeyondEnd(t *testing.T) {
	// Out-of-range pages are not an error; they just address an empty slice.
	meta, skip := New(25, 4, 10)
	if skip != 30 {
		t.Fatalf("expected skip 30, got %d", skip)
	}
	if meta.CurrentPage != 4 || meta.TotalPages != 3 {
		t.Fatalf("unexpected meta: %+v", meta)
	}
}

func TestNew_Defaults(t *testing.T) {
	meta, skip := New(5, 0, 0)
	if meta.CurrentPage != 1 {
		t.Fatalf("expected page clamped to 1, got %d", meta.CurrentPage)
	}
	if meta.ItemsPerPage != DefaultLimit {
		t.Fatalf("expected default limit %d, got %d", DefaultLimit, meta.ItemsPerPage)
	}
	if skip != 0 {
		t.Fatalf("expected skip 0, got %d", skip)
	}
}

func TestNew_LimitCapped(t *testing.T) {
	meta, _ := New(1000, 1, 500)
	if meta.ItemsPerPage != 100 {
		t.Fatalf("expected limit capped at 100, got %d", meta.ItemsPerPage)
	}
	if meta.TotalPages != 10 {
		t.Fatalf("expected 10 pages, got %d", meta.TotalPages)
	}
}

func TestNew_Empty(t *testing.T) {
	meta, skip := New(0, 1, 10)
	if meta.TotalPages != 0 || meta.TotalItems != 0 || skip != 0 {
		t.Fatalf("unexpected meta for empty set: %+v skip=%d", meta, skip)
	}
}
