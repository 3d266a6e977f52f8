package records

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"patilog/internal/domain/schedule"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, now func() time.Time) {
	if now == nil {
		now = time.Now
	}

	r.Route("/records", func(rr chi.Router) {
		rr.Get("/", listRecordsHandler(svc))
		rr.Post("/", createRecordHandler(svc))

		// Delete is a POST: it is a rewrite of the whole collection, not a
		// row-level DELETE.
		rr.Post("/delete", deleteRecordsHandler(svc))
	})

	r.Get("/pets", listPetsHandler(svc))
	r.Get("/pets/{petName}/weights", weightHistoryHandler(svc))
	r.Get("/treatments", listTreatmentsHandler())

	r.Get("/reminders/preview", previewRemindersHandler(svc, now))
}

// recordResponse is one row of the overview. Row is the store row index of
// the load that produced this listing; deletes reference it.
type recordResponse struct {
	Row            int     `json:"row"`
	PetName        string  `json:"pet_name"`
	Treatment      string  `json:"treatment"`
	Applied        string  `json:"applied_date"`
	NextDue        string  `json:"next_due_date"`
	NextDueDisplay string  `json:"next_due_display,omitempty"` // DD.MM.YYYY
	WeightKg       float64 `json:"weight_kg,omitempty"`
}

// createRecordRequest is the entry form payload. Exactly one of months and
// next_due picks the interval policy; both empty means a one-off record.
type createRecordRequest struct {
	PetName   string  `json:"pet_name"`
	Treatment string  `json:"treatment"`
	Applied   string  `json:"applied_date"` // ISO YYYY-MM-DD
	Months    int     `json:"months"`       // 1..12
	NextDue   string  `json:"next_due"`     // ISO, manual policy
	WeightKg  float64 `json:"weight_kg"`
}

// listRecordsHandler godoc
// @Summary List treatment records
// @Description Lists every row of the store. With sort=next_due the rows are ordered by next due date ascending, unparseable dates last, as in the overview screen.
// @Tags records
// @Produce json
// @Param sort query string false "next_due to sort by due date"
// @Success 200 {array} recordResponse
// @Router /records [get]
func listRecordsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, err := svc.List(r.Context())
		if err != nil {
			// store unreachable reads as "no records yet"; accepted ambiguity
			writeJSON(w, http.StatusOK, []recordResponse{})
			return
		}

		out := make([]recordResponse, 0, len(recs))
		for i, rec := range recs {
			out = append(out, toRecordResponse(i, rec))
		}

		if r.URL.Query().Get("sort") == "next_due" {
			sortByNextDue(out)
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// createRecordHandler godoc
// @Summary Add a treatment record
// @Description Appends one row. months (1-12) computes the next due date as months*30 days after the applied date; next_due sets it manually and must not precede the applied date.
// @Tags records
// @Accept json
// @Produce json
// @Param payload body createRecordRequest true "New record"
// @Success 201 {object} recordResponse
// @Failure 400 {string} string "invalid json / invalid dates / invalid policy"
// @Failure 502 {string} string "store write failed"
// @Router /records [post]
func createRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRecordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		applied, err := time.Parse(schedule.ISODate, strings.TrimSpace(req.Applied))
		if err != nil {
			http.Error(w, "applied_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		var policy schedule.IntervalPolicy
		switch {
		case req.Months != 0 && strings.TrimSpace(req.NextDue) != "":
			http.Error(w, "months and next_due are mutually exclusive", http.StatusBadRequest)
			return
		case req.Months != 0:
			policy = schedule.MonthsPolicy(req.Months)
		case strings.TrimSpace(req.NextDue) != "":
			manual, err := time.Parse(schedule.ISODate, strings.TrimSpace(req.NextDue))
			if err != nil {
				http.Error(w, "next_due must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			// entry-form constraint; the scheduler does not re-check this
			if manual.Before(applied) {
				http.Error(w, "next_due must not precede applied_date", http.StatusBadRequest)
				return
			}
			policy = schedule.ManualPolicy(manual)
		}

		rec, err := svc.Create(r.Context(), CreateInput{
			PetName:   req.PetName,
			Treatment: req.Treatment,
			Applied:   applied,
			Policy:    policy,
			WeightKg:  req.WeightKg,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "store write failed", http.StatusBadGateway)
			return
		}

		writeJSON(w, http.StatusCreated, toRecordResponse(-1, rec))
	}
}

type deleteRecordsRequest struct {
	Rows []int `json:"rows"`
}

// deleteRecordsHandler godoc
// @Summary Delete records by row index
// @Description Rewrites the whole collection without the given rows (delete-by-rewrite). Indexes refer to the unsorted listing. No retry on failure.
// @Tags records
// @Accept json
// @Success 204
// @Failure 400 {string} string "invalid json / bad row index"
// @Failure 502 {string} string "store write failed"
// @Router /records/delete [post]
func deleteRecordsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req deleteRecordsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if err := svc.Delete(r.Context(), req.Rows); err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "store write failed", http.StatusBadGateway)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pets, err := svc.Pets(r.Context())
		if err != nil {
			writeJSON(w, http.StatusOK, []string{})
			return
		}
		writeJSON(w, http.StatusOK, pets)
	}
}

type weightResponse struct {
	Date     string  `json:"date"`
	WeightKg float64 `json:"weight_kg"`
}

func weightHistoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petName := chi.URLParam(r, "petName")

		entries, err := svc.WeightHistory(r.Context(), petName)
		if err != nil {
			writeJSON(w, http.StatusOK, []weightResponse{})
			return
		}

		out := make([]weightResponse, 0, len(entries))
		for _, e := range entries {
			out = append(out, weightResponse{Date: e.Date, WeightKg: e.WeightKg})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func listTreatmentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, TreatmentCatalogue)
	}
}

type previewReminderResponse struct {
	PetName    string `json:"pet_name"`
	Treatment  string `json:"treatment"`
	DueDate    string `json:"due_date"`
	DueDisplay string `json:"due_display"`
	DaysLeft   int    `json:"days_left"`
	Identity   string `json:"identity"`
}

// previewRemindersHandler godoc
// @Summary Dry-run the reminder selection
// @Description Runs the same selection the notifier job runs, without sending anything. today (YYYY-MM-DD) and lookahead override the defaults; useful for checking what tomorrow morning's run will pick.
// @Tags reminders
// @Produce json
// @Param today query string false "override today (YYYY-MM-DD)"
// @Param lookahead query int false "lookahead window in days (default 7)"
// @Success 200 {array} previewReminderResponse
// @Failure 400 {string} string "bad today/lookahead"
// @Router /reminders/preview [get]
func previewRemindersHandler(svc *Service, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		today := now()
		if v := strings.TrimSpace(r.URL.Query().Get("today")); v != "" {
			t, err := time.Parse(schedule.ISODate, v)
			if err != nil {
				http.Error(w, "today must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			today = t
		}

		lookahead := schedule.DefaultLookaheadDays
		if v := r.URL.Query().Get("lookahead"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				http.Error(w, "lookahead must be a non-negative integer", http.StatusBadRequest)
				return
			}
			lookahead = n
		}

		recs, err := svc.List(r.Context())
		if err != nil {
			writeJSON(w, http.StatusOK, []previewReminderResponse{})
			return
		}

		due, _ := schedule.SelectDue(Entries(recs), today, lookahead)

		out := make([]previewReminderResponse, 0, len(due))
		for _, rem := range due {
			out = append(out, previewReminderResponse{
				PetName:    rem.PetName,
				Treatment:  rem.Treatment,
				DueDate:    rem.DueDate.Format(schedule.ISODate),
				DueDisplay: rem.DueDate.Format(schedule.DisplayDate),
				DaysLeft:   rem.DaysLeft,
				Identity:   rem.Identity,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toRecordResponse(row int, r TreatmentRecord) recordResponse {
	resp := recordResponse{
		Row:       row,
		PetName:   r.PetName,
		Treatment: r.Treatment,
		Applied:   r.Applied,
		NextDue:   r.NextDue,
		WeightKg:  r.WeightKg,
	}
	if due, err := r.NextDueDate(); err == nil {
		resp.NextDueDisplay = due.Format(schedule.DisplayDate)
	}
	return resp
}

// sortByNextDue orders by parsed due date ascending; rows whose due date does
// not parse sink to the end, keeping their relative order.
func sortByNextDue(rows []recordResponse) {
	sort.SliceStable(rows, func(i, j int) bool {
		di, erri := schedule.ParseDate(rows[i].NextDue)
		dj, errj := schedule.ParseDate(rows[j].NextDue)
		if erri != nil {
			return false
		}
		if errj != nil {
			return true
		}
		return di.Before(dj)
	})
}

// writeJSON is duplicated across module handlers on purpose; extracting a
// shared helper is not worth it yet.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
