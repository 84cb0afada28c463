package service

import (
	"errors"
	"testing"

	"github.com/ritik0027/SnapTube-Backend/internal/model"
)

func TestPageRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		p       PageRequest
		wantErr bool
	}{
		{"first page", PageRequest{Page: 1, PageSize: 10}, false},
		{"max size", PageRequest{Page: 3, PageSize: 50}, false},
		{"page zero", PageRequest{Page: 0, PageSize: 10}, true},
		{"size zero", PageRequest{Page: 1, PageSize: 0}, true},
		{"size over max", PageRequest{Page: 1, PageSize: 51}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.validate(50)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, model.ErrInvalidInput) {
				t.Errorf("error = %v, want invalid input", err)
			}
		})
	}
}

func TestBuildPage(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		p          PageRequest
		wantPages  int
		wantPrev   *int
		wantNext   *int
		wantHasPrv bool
		wantHasNxt bool
	}{
		{"middle", 25, PageRequest{Page: 2, PageSize: 10}, 3, intPtr(1), intPtr(3), true, true},
		{"first", 25, PageRequest{Page: 1, PageSize: 10}, 3, nil, intPtr(2), false, true},
		{"last", 25, PageRequest{Page: 3, PageSize: 10}, 3, intPtr(2), nil, true, false},
		{"exact fit", 20, PageRequest{Page: 2, PageSize: 10}, 2, intPtr(1), nil, true, false},
		{"empty", 0, PageRequest{Page: 1, PageSize: 10}, 1, nil, nil, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildPage(nil, tt.total, tt.p)
			if got.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", got.TotalPages, tt.wantPages)
			}
			if got.HasPrevPage != tt.wantHasPrv || got.HasNextPage != tt.wantHasNxt {
				t.Errorf("hasPrev=%v hasNext=%v, want %v %v", got.HasPrevPage, got.HasNextPage, tt.wantHasPrv, tt.wantHasNxt)
			}
			if !equalIntPtr(got.PrevPage, tt.wantPrev) || !equalIntPtr(got.NextPage, tt.wantNext) {
				t.Errorf("prev/next pointers wrong: %v %v", got.PrevPage, got.NextPage)
			}
			if got.Items == nil {
				t.Error("Items is nil, want empty slice")
			}
		})
	}
}

func TestPageSlice(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}
	if got := pageSlice(items, PageRequest{Page: 2, PageSize: 10}); len(got) != 10 || got[0] != 10 {
		t.Errorf("page 2 = %v", got)
	}
	if got := pageSlice(items, PageRequest{Page: 3, PageSize: 10}); len(got) != 5 {
		t.Errorf("page 3 len = %d, want 5", len(got))
	}
	if got := pageSlice(items, PageRequest{Page: 4, PageSize: 10}); got != nil {
		t.Errorf("page 4 = %v, want nil", got)
	}
}

func intPtr(n int) *int { return &n }

func equalIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
