package records

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"patilog/internal/domain/schedule"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	PetName   string
	Treatment string
	Applied   time.Time
	Policy    schedule.IntervalPolicy // zero value = one-off, no next due
	WeightKg  float64
}

func (p CreateInput) hasPolicy() bool {
	return p.Policy.Months != 0 || !p.Policy.Manual.IsZero()
}

// Create appends one row. The next due date comes from the interval policy;
// a record without a policy is a one-off and gets an empty next-due cell.
func (s *Service) Create(ctx context.Context, in CreateInput) (TreatmentRecord, error) {
	if strings.TrimSpace(in.PetName) == "" {
		return TreatmentRecord{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Treatment) == "" {
		return TreatmentRecord{}, ErrInvalidInput
	}
	if in.Applied.IsZero() {
		return TreatmentRecord{}, ErrInvalidInput
	}
	if in.WeightKg < 0 {
		return TreatmentRecord{}, ErrInvalidInput
	}

	nextDue := ""
	if in.hasPolicy() {
		due, err := schedule.NextDueDate(in.Applied, in.Policy)
		if err != nil {
			return TreatmentRecord{}, ErrInvalidInput
		}
		nextDue = due.Format(schedule.ISODate)
	}

	r := TreatmentRecord{
		PetName:   strings.TrimSpace(in.PetName),
		Treatment: strings.TrimSpace(in.Treatment),
		Applied:   in.Applied.Format(schedule.ISODate),
		NextDue:   nextDue,
		WeightKg:  math.Round(in.WeightKg*10) / 10,
	}

	if err := s.repo.Append(ctx, r); err != nil {
		return TreatmentRecord{}, err
	}
	return r, nil
}

func (s *Service) List(ctx context.Context) ([]TreatmentRecord, error) {
	return s.repo.LoadAll(ctx)
}

// Delete removes the given row indexes by rewriting the whole collection with
// a filtered copy. Indexes refer to the row order of the load that produced
// the listing the user deleted from.
func (s *Service) Delete(ctx context.Context, rows []int) error {
	if len(rows) == 0 {
		return ErrInvalidInput
	}

	recs, err := s.repo.LoadAll(ctx)
	if err != nil {
		return err
	}

	drop := make(map[int]bool, len(rows))
	for _, i := range rows {
		if i < 0 || i >= len(recs) {
			return ErrInvalidInput
		}
		drop[i] = true
	}

	kept := make([]TreatmentRecord, 0, len(recs)-len(drop))
	for i, r := range recs {
		if !drop[i] {
			kept = append(kept, r)
		}
	}

	return s.repo.ReplaceAll(ctx, kept)
}

// Pets returns the distinct pet names in first-seen row order, for the entry
// form selector. Names are not normalized: "Max" and "max " are two pets.
func (s *Service) Pets(ctx context.Context) ([]string, error) {
	recs, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(recs))
	out := make([]string, 0)
	for _, r := range recs {
		if r.PetName == "" || seen[r.PetName] {
			continue
		}
		seen[r.PetName] = true
		out = append(out, r.PetName)
	}
	return out, nil
}

type WeightEntry struct {
	Date     string
	WeightKg float64
}

// WeightHistory returns the recorded weights for one pet in row order,
// skipping rows where no weight was entered.
func (s *Service) WeightHistory(ctx context.Context, petName string) ([]WeightEntry, error) {
	recs, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]WeightEntry, 0)
	for _, r := range recs {
		if r.PetName != petName || r.WeightKg <= 0 {
			continue
		}
		out = append(out, WeightEntry{Date: r.Applied, WeightKg: r.WeightKg})
	}
	return out, nil
}
