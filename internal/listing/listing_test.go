package listing

import "testing"

func TestResolveDefaultsAndClamping(t *testing.T) {
	tests := []struct {
		page, pageSize         int
		wantPage, wantPageSize int
	}{
		{0, 0, 1, 10},
		{-3, -1, 1, 10},
		{1, 10, 1, 10},
		{2, 500, 2, 100},
		{7, 100, 7, 100},
	}

	for _, tt := range tests {
		page, pageSize := Resolve(tt.page, tt.pageSize)
		if page != tt.wantPage || pageSize != tt.wantPageSize {
			t.Errorf("Resolve(%d, %d) = (%d, %d), want (%d, %d)",
				tt.page, tt.pageSize, page, pageSize, tt.wantPage, tt.wantPageSize)
		}
	}
}

func TestPaginateSlices(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	page := Paginate(items, 2, 10)

	if len(page.Items) != 10 {
		t.Fatalf("got %d items, want 10", len(page.Items))
	}
	if page.Items[0] != 10 {
		t.Fatalf("page 2 starts at %d, want 10", page.Items[0])
	}
	if page.TotalCount != 25 || page.Page != 2 || page.PageSize != 10 {
		t.Fatalf("unexpected page metadata: %+v", page)
	}

	last := Paginate(items, 3, 10)
	if len(last.Items) != 5 {
		t.Fatalf("final page: got %d items, want 5", len(last.Items))
	}
}

func TestPaginateBeyondRangeIsEmptyNotError(t *testing.T) {
	items := []string{"a", "b", "c"}

	page := Paginate(items, 9, 10)

	if len(page.Items) != 0 {
		t.Fatalf("got %d items, want 0", len(page.Items))
	}
	if page.Items == nil {
		t.Fatal("items must be an empty slice, not nil")
	}
	if page.TotalCount != 3 {
		t.Fatalf("total = %d, want 3", page.TotalCount)
	}
}

func TestPaginateEmptyCollection(t *testing.T) {
	page := Paginate([]int{}, 1, 10)

	if len(page.Items) != 0 || page.TotalCount != 0 {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestMatchesKeyword(t *testing.T) {
	tests := []struct {
		value, keyword string
		want           bool
	}{
		{"Headstone A", "", true},
		{"Headstone A", "   ", true},
		{"Headstone A", "head", true},
		{"Headstone A", "STONE", true},
		{"Headstone A", " stone ", true},
		{"Headstone A", "marble", false},
	}

	for _, tt := range tests {
		if got := MatchesKeyword(tt.value, tt.keyword); got != tt.want {
			t.Errorf("MatchesKeyword(%q, %q) = %v, want %v", tt.value, tt.keyword, got, tt.want)
		}
	}
}
