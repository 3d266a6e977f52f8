package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"patilog/internal/domain/records"
)

// RecordsRepo is the Postgres flavor of the record store, for deployments
// that outgrow the shared sheet. The table mirrors the sheet: no natural key,
// pos only preserves insertion order, and deletion is still a full rewrite.
//
//	CREATE TABLE treatment_records (
//	    pos        BIGSERIAL PRIMARY KEY,
//	    pet_name   TEXT NOT NULL,
//	    treatment  TEXT NOT NULL,
//	    applied    TEXT NOT NULL,
//	    next_due   TEXT NOT NULL DEFAULT '',
//	    weight_kg  NUMERIC(6,1) NOT NULL DEFAULT 0
//	);
type RecordsRepo struct {
	db *sql.DB
}

func NewRecordsRepo(db *sql.DB) *RecordsRepo {
	return &RecordsRepo{db: db}
}

func (r *RecordsRepo) LoadAll(ctx context.Context) ([]records.TreatmentRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT pet_name, treatment, applied, next_due, weight_kg
		FROM treatment_records
		ORDER BY pos
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: read: %w", err)
	}
	defer rows.Close()

	out := make([]records.TreatmentRecord, 0)
	for rows.Next() {
		var rec records.TreatmentRecord
		if err := rows.Scan(&rec.PetName, &rec.Treatment, &rec.Applied, &rec.NextDue, &rec.WeightKg); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *RecordsRepo) Append(ctx context.Context, rec records.TreatmentRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO treatment_records (pet_name, treatment, applied, next_due, weight_kg)
		VALUES ($1, $2, $3, $4, $5)
	`, rec.PetName, rec.Treatment, rec.Applied, rec.NextDue, rec.WeightKg)
	if err != nil {
		return fmt.Errorf("postgres: append: %w", err)
	}
	return nil
}

func (r *RecordsRepo) ReplaceAll(ctx context.Context, recs []records.TreatmentRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: rewrite: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `TRUNCATE treatment_records`); err != nil {
		return fmt.Errorf("postgres: rewrite: %w", err)
	}

	for _, rec := range recs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO treatment_records (pet_name, treatment, applied, next_due, weight_kg)
			VALUES ($1, $2, $3, $4, $5)
		`, rec.PetName, rec.Treatment, rec.Applied, rec.NextDue, rec.WeightKg); err != nil {
			return fmt.Errorf("postgres: rewrite: %w", err)
		}
	}

	return tx.Commit()
}
