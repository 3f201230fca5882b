package blocks

import (
	"cmp"
	"slices"

	"github.com/google/uuid"
)

// NewID returns a random block identifier.
func NewID() string {
	return uuid.NewString()
}

// SortByOrder returns a copy of in sorted by Order. Equal orders keep their
// slice position.
func SortByOrder(in []Block) []Block {
	out := slices.Clone(in)
	slices.SortStableFunc(out, func(a, b Block) int {
		return cmp.Compare(a.Order, b.Order)
	})
	return out
}

// Renumber sorts in by Order and rewrites Order to 0..n-1. The input slice is
// not modified.
func Renumber(in []Block) []Block {
	out := SortByOrder(in)
	for i := range out {
		out[i].Order = i
	}
	return out
}

// Densify rewrites Order to match the current slice positions. Callers that
// already hold blocks in visual order use it after inserting or moving.
func Densify(in []Block) []Block {
	out := slices.Clone(in)
	for i := range out {
		out[i].Order = i
	}
	return out
}

// IsDense reports whether the orders of in form 0..n-1 without gaps or
// duplicates.
func IsDense(in []Block) bool {
	seen := make([]bool, len(in))
	for _, b := range in {
		if b.Order < 0 || b.Order >= len(in) || seen[b.Order] {
			return false
		}
		seen[b.Order] = true
	}
	return true
}

// IndexOf returns the slice index of the block with id, or -1.
func IndexOf(in []Block, id string) int {
	return slices.IndexFunc(in, func(b Block) bool { return b.ID == id })
}
