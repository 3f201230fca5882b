package blocks_test

import (
	"math"
	"testing"

	"github.com/goliatone/go-pagebuilder/internal/blocks"
)

func TestRenumberAfterRemoval(t *testing.T) {
	list := []blocks.Block{
		{ID: "a", Order: 0},
		{ID: "b", Order: 1},
		{ID: "c", Order: 2},
	}
	list = append(list[:1], list[2:]...)
	got := blocks.Renumber(list)
	if got[0].ID != "a" || got[0].Order != 0 || got[1].ID != "c" || got[1].Order != 1 {
		t.Fatalf("unexpected renumbering: %+v", got)
	}
	if !blocks.IsDense(got) {
		t.Fatalf("expected dense orders")
	}
}

func TestSortByOrderIsStable(t *testing.T) {
	list := []blocks.Block{
		{ID: "x", Order: 2},
		{ID: "y", Order: 1},
		{ID: "z", Order: 1},
	}
	got := blocks.SortByOrder(list)
	if got[0].ID != "y" || got[1].ID != "z" || got[2].ID != "x" {
		t.Fatalf("unexpected order: %+v", got)
	}
	if list[0].ID != "x" {
		t.Fatalf("input slice modified")
	}
}

func TestSortByOrderHandlesExtremeOrders(t *testing.T) {
	list := []blocks.Block{
		{ID: "max", Order: math.MaxInt},
		{ID: "min", Order: math.MinInt},
		{ID: "zero", Order: 0},
	}
	got := blocks.SortByOrder(list)
	if got[0].ID != "min" || got[1].ID != "zero" || got[2].ID != "max" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestIsDenseDetectsGapsAndDuplicates(t *testing.T) {
	if blocks.IsDense([]blocks.Block{{Order: 0}, {Order: 2}}) {
		t.Fatalf("expected gap to be detected")
	}
	if blocks.IsDense([]blocks.Block{{Order: 0}, {Order: 0}}) {
		t.Fatalf("expected duplicate to be detected")
	}
	if !blocks.IsDense(nil) {
		t.Fatalf("expected empty list to be dense")
	}
}

func TestDensifyFollowsSlicePosition(t *testing.T) {
	got := blocks.Densify([]blocks.Block{{ID: "b", Order: 7}, {ID: "a", Order: 3}})
	if got[0].ID != "b" || got[0].Order != 0 || got[1].Order != 1 {
		t.Fatalf("unexpected densify result: %+v", got)
	}
	if blocks.IndexOf(got, "a") != 1 || blocks.IndexOf(got, "missing") != -1 {
		t.Fatalf("unexpected IndexOf results")
	}
}
