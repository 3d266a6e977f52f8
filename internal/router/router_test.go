package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"patilog/internal/router"
)

func fixedToday() time.Time {
	return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
}

func TestHTTP_EndToEnd_RecordLifecycle(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{Now: fixedToday}))
	defer ts.Close()

	// 1) Empty overview
	{
		st, body := doReq(t, ts.URL, "GET", "/records", nil)
		if st != http.StatusOK || strings.TrimSpace(string(body)) != "[]" {
			t.Fatalf("expected empty listing, got %d body=%s", st, string(body))
		}
	}

	// 2) Add a record with a month policy (12 * 30 days)
	{
		st, body := doReq(t, ts.URL, "POST", "/records", map[string]any{
			"pet_name":     "Max",
			"treatment":    "Kuduz",
			"applied_date": "2025-06-01",
			"months":       12,
			"weight_kg":    12.5,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create, got %d body=%s", st, string(body))
		}
		var resp struct {
			NextDue string `json:"next_due_date"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.NextDue != "2026-05-27" {
			t.Fatalf("next_due_date = %q, want 2026-05-27", resp.NextDue)
		}
	}

	// 3) Add a record with a manual date inside the reminder window
	{
		st, body := doReq(t, ts.URL, "POST", "/records", map[string]any{
			"pet_name":     "Luna",
			"treatment":    "Karma (DHPP)",
			"applied_date": "2025-06-01",
			"next_due":     "2025-06-03",
			"weight_kg":    4.2,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create manual, got %d body=%s", st, string(body))
		}
	}

	// 4) Listing has both rows with store row indexes
	{
		st, body := doReq(t, ts.URL, "GET", "/records", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list, got %d", st)
		}
		var rows []struct {
			Row     int    `json:"row"`
			PetName string `json:"pet_name"`
		}
		_ = json.Unmarshal(body, &rows)
		if len(rows) != 2 || rows[0].PetName != "Max" || rows[1].Row != 1 {
			t.Fatalf("rows = %+v", rows)
		}
	}

	// 5) Pets selector sees both pets
	{
		st, body := doReq(t, ts.URL, "GET", "/pets", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 pets, got %d", st)
		}
		var pets []string
		_ = json.Unmarshal(body, &pets)
		if len(pets) != 2 {
			t.Fatalf("pets = %v", pets)
		}
	}

	// 6) Weight history for Max
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/Max/weights", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 weights, got %d", st)
		}
		var hist []struct {
			WeightKg float64 `json:"weight_kg"`
		}
		_ = json.Unmarshal(body, &hist)
		if len(hist) != 1 || hist[0].WeightKg != 12.5 {
			t.Fatalf("weights = %+v", hist)
		}
	}

	// 7) Reminder preview picks Luna (due in 2 days), not Max (due next year)
	{
		st, body := doReq(t, ts.URL, "GET", "/reminders/preview", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 preview, got %d", st)
		}
		var due []struct {
			PetName  string `json:"pet_name"`
			DaysLeft int    `json:"days_left"`
			Identity string `json:"identity"`
		}
		_ = json.Unmarshal(body, &due)
		if len(due) != 1 || due[0].PetName != "Luna" || due[0].DaysLeft != 2 {
			t.Fatalf("preview = %+v", due)
		}
		if due[0].Identity == "" {
			t.Fatal("preview reminder missing identity")
		}
	}

	// 8) Delete Max's row by index, listing shrinks
	{
		st, body := doReq(t, ts.URL, "POST", "/records/delete", map[string]any{"rows": []int{0}})
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete, got %d body=%s", st, string(body))
		}

		st, body = doReq(t, ts.URL, "GET", "/records", nil)
		var rows []struct {
			PetName string `json:"pet_name"`
		}
		_ = json.Unmarshal(body, &rows)
		if st != http.StatusOK || len(rows) != 1 || rows[0].PetName != "Luna" {
			t.Fatalf("rows after delete = %+v", rows)
		}
	}
}

func TestHTTP_CreateRecord_Validation(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{Now: fixedToday}))
	defer ts.Close()

	cases := []struct {
		name    string
		payload map[string]any
	}{
		{"bad applied date", map[string]any{"pet_name": "Max", "treatment": "Kuduz", "applied_date": "01.06.2025"}},
		{"months and manual together", map[string]any{"pet_name": "Max", "treatment": "Kuduz", "applied_date": "2025-06-01", "months": 6, "next_due": "2025-09-01"}},
		{"manual before applied", map[string]any{"pet_name": "Max", "treatment": "Kuduz", "applied_date": "2025-06-01", "next_due": "2025-05-01"}},
		{"months out of range", map[string]any{"pet_name": "Max", "treatment": "Kuduz", "applied_date": "2025-06-01", "months": 24}},
		{"missing pet", map[string]any{"treatment": "Kuduz", "applied_date": "2025-06-01", "months": 6}},
	}

	for _, tc := range cases {
		st, _ := doReq(t, ts.URL, "POST", "/records", tc.payload)
		if st != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tc.name, st)
		}
	}
}

func TestHTTP_PreviewOverrides(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{Now: fixedToday}))
	defer ts.Close()

	st, body := doReq(t, ts.URL, "POST", "/records", map[string]any{
		"pet_name":     "Max",
		"treatment":    "Kuduz",
		"applied_date": "2025-06-01",
		"next_due":     "2025-06-10",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", st, string(body))
	}

	// 9 days out: excluded by the default window, included with lookahead=10
	st, body = doReq(t, ts.URL, "GET", "/reminders/preview", nil)
	if st != http.StatusOK || strings.TrimSpace(string(body)) != "[]" {
		t.Fatalf("default window: got %d body=%s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "GET", "/reminders/preview?lookahead=10", nil)
	var due []struct {
		DaysLeft int `json:"days_left"`
	}
	_ = json.Unmarshal(body, &due)
	if st != http.StatusOK || len(due) != 1 || due[0].DaysLeft != 9 {
		t.Fatalf("lookahead=10: got %d body=%s", st, string(body))
	}

	// today override moves the window
	st, body = doReq(t, ts.URL, "GET", "/reminders/preview?today=2025-06-09", nil)
	_ = json.Unmarshal(body, &due)
	if st != http.StatusOK || len(due) != 1 || due[0].DaysLeft != 1 {
		t.Fatalf("today override: got %d body=%s", st, string(body))
	}
}

func TestHTTP_OverviewPage(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{Now: fixedToday}))
	defer ts.Close()

	st, body := doReq(t, ts.URL, "POST", "/records", map[string]any{
		"pet_name":     "Max",
		"treatment":    "Kuduz",
		"applied_date": "2025-06-01",
		"next_due":     "2025-06-03",
		"weight_kg":    12.5,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "GET", "/", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 page, got %d", st)
	}
	page := string(body)
	for _, want := range []string{"Max", "Kuduz", "03.06.2025", "12.5 kg", "PatiLog"} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func doReq(t *testing.T, baseURL, method, path string, payload map[string]any) (int, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		t.Fatal(err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}
