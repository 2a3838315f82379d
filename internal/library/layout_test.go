package library_test

import (
	"testing"

	"github.com/blackwell-systems/aethernote/internal/library"
	"github.com/google/go-cmp/cmp"
)

func TestMasonry_ShortestColumn(t *testing.T) {
	got, total := library.Masonry([]int{10, 4, 3, 5}, 2, 1)
	want := []library.Placement{
		{Column: 0, Top: 0},
		{Column: 1, Top: 0},
		{Column: 1, Top: 5},
		{Column: 1, Top: 9},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("placements mismatch (-want +got):\n%s", diff)
	}
	if total != 15 {
		t.Errorf("total = %d, want 15", total)
	}
}

func TestMasonry_SingleColumnFallback(t *testing.T) {
	got, total := library.Masonry([]int{2, 3}, 0, 0)
	if got[1].Column != 0 || got[1].Top != 2 {
		t.Errorf("second placement = %+v", got[1])
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
}

func TestMasonry_Empty(t *testing.T) {
	got, total := library.Masonry(nil, 3, 2)
	if len(got) != 0 || total != 0 {
		t.Errorf("Masonry(nil) = %v, %d", got, total)
	}
}

func TestColumns(t *testing.T) {
	cases := []struct{ width, item, gap, want int }{
		{100, 30, 2, 3},
		{20, 30, 2, 1},
		{0, 30, 2, 1},
		{64, 30, 2, 2},
	}
	for _, c := range cases {
		if got := library.Columns(c.width, c.item, c.gap); got != c.want {
			t.Errorf("Columns(%d, %d, %d) = %d, want %d", c.width, c.item, c.gap, got, c.want)
		}
	}
}
