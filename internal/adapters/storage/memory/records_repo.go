package memory

import (
	"context"
	"sync"

	"patilog/internal/domain/records"
)

// recordsRepo keeps rows in a slice because row order is the store order;
// delete-by-rewrite renumbers everything, exactly like the real sheet.
type recordsRepo struct {
	mu   sync.RWMutex
	rows []records.TreatmentRecord
}

func NewRecordsRepo() records.Repository {
	return &recordsRepo{}
}

func (r *recordsRepo) LoadAll(ctx context.Context) ([]records.TreatmentRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]records.TreatmentRecord, len(r.rows))
	copy(out, r.rows)
	return out, nil
}

func (r *recordsRepo) Append(ctx context.Context, rec records.TreatmentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rows = append(r.rows, rec)
	return nil
}

func (r *recordsRepo) ReplaceAll(ctx context.Context, recs []records.TreatmentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rows = make([]records.TreatmentRecord, len(recs))
	copy(r.rows, recs)
	return nil
}
