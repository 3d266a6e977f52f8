package records

import "context"

// Repository is the port to the tabular backing store. Row order is the
// store's order and is meaningful only within one load; a ReplaceAll may
// renumber everything.
type Repository interface {
	LoadAll(ctx context.Context) ([]TreatmentRecord, error)
	Append(ctx context.Context, r TreatmentRecord) error
	// ReplaceAll rewrites the whole collection. It exists to implement
	// delete-by-rewrite; there is no single-row delete. A concurrent Append
	// can be silently dropped by a racing ReplaceAll — accepted, see DESIGN.md.
	ReplaceAll(ctx context.Context, recs []TreatmentRecord) error
}
