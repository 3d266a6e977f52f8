package records

import (
	"html/template"
	"net/http"
	"time"

	"patilog/internal/domain/schedule"
)

// The editor is a single server-rendered page over the JSON API: an overview
// table with delete checkboxes and the entry form. Anything fancier belongs
// in a real frontend.
const pageHTML = `<!doctype html>
<html lang="tr">
<head>
<meta charset="utf-8">
<title>🐾 PatiLog</title>
<style>
body { font-family: sans-serif; max-width: 960px; margin: 2rem auto; color: #222; }
table { border-collapse: collapse; width: 100%; margin-bottom: 2rem; }
th, td { border: 1px solid #ccc; padding: .4rem .6rem; text-align: left; }
th { background: #f5f5f5; }
form { display: grid; grid-template-columns: repeat(2, 1fr); gap: .6rem 1.2rem; max-width: 640px; }
form button { grid-column: span 2; padding: .5rem; }
.due-soon { background: #fff3cd; }
</style>
</head>
<body>
<h1>🐾 PatiLog</h1>

<h2>📊 Genel Bakış</h2>
{{if .Rows}}
<form method="post" action="/records/delete" onsubmit="return submitDelete(this)">
<table>
<tr><th></th><th>Pet İsmi</th><th>Aşı Tipi</th><th>Uygulama Tarihi</th><th>Sonraki Aşı</th><th>Kilo</th></tr>
{{range .Rows}}
<tr{{if .DueSoon}} class="due-soon"{{end}}>
<td><input type="checkbox" name="row" value="{{.Row}}"></td>
<td>{{.PetName}}</td>
<td>{{.Treatment}}</td>
<td>{{.AppliedDisplay}}</td>
<td>{{.NextDueDisplay}}</td>
<td>{{if .WeightKg}}{{printf "%.1f kg" .WeightKg}}{{end}}</td>
</tr>
{{end}}
</table>
<button type="submit">Seçilenleri Sil</button>
</form>
{{else}}
<p>Henüz kayıt yok. Yeni kayıt ekleyerek başlayın.</p>
{{end}}

<h2>💉 Yeni Kayıt</h2>
<form onsubmit="return submitRecord(this)">
<label>Evcil Hayvan
<input name="pet_name" list="pets" required>
<datalist id="pets">{{range .Pets}}<option value="{{.}}">{{end}}</datalist>
</label>
<label>Aşı / İşlem
<select name="treatment">{{range .Treatments}}<option>{{.}}</option>{{end}}</select>
</label>
<label>Uygulama Tarihi <input type="date" name="applied_date" value="{{.Today}}" required></label>
<label>Güncel Kilo (kg) <input type="number" name="weight_kg" min="0" step="0.1"></label>
<label>Kaç ay sonra hatırlat? <input type="number" name="months" min="1" max="12"></label>
<label>veya Sonraki Tarih (manuel) <input type="date" name="next_due"></label>
<button type="submit">Kaydet</button>
</form>

<script>
async function submitRecord(f) {
  const b = {
    pet_name: f.pet_name.value,
    treatment: f.treatment.value,
    applied_date: f.applied_date.value,
    weight_kg: parseFloat(f.weight_kg.value) || 0,
    months: parseInt(f.months.value) || 0,
    next_due: f.next_due.value,
  };
  const r = await fetch('/records', {method: 'POST', headers: {'Content-Type': 'application/json'}, body: JSON.stringify(b)});
  if (r.ok) { location.reload(); } else { alert(await r.text()); }
  return false;
}
async function submitDelete(f) {
  const rows = [...f.querySelectorAll('input[name=row]:checked')].map(c => parseInt(c.value));
  if (!rows.length) { return false; }
  const r = await fetch('/records/delete', {method: 'POST', headers: {'Content-Type': 'application/json'}, body: JSON.stringify({rows: rows})});
  if (r.ok) { location.reload(); } else { alert(await r.text()); }
  return false;
}
</script>
</body>
</html>`

var pageTmpl = template.Must(template.New("page").Parse(pageHTML))

type pageRow struct {
	Row            int
	PetName        string
	Treatment      string
	AppliedDisplay string
	NextDueDisplay string
	WeightKg       float64
	DueSoon        bool
}

type pageData struct {
	Rows       []pageRow
	Pets       []string
	Treatments []string
	Today      string
}

// PageHandler renders the overview + entry form. Sorted by next due like the
// original dashboard; rows inside the lookahead window are highlighted.
func PageHandler(svc *Service, now func() time.Time) http.HandlerFunc {
	if now == nil {
		now = time.Now
	}

	return func(w http.ResponseWriter, r *http.Request) {
		today := now()

		// store unreachable renders as an empty dashboard
		recs, _ := svc.List(r.Context())
		pets, _ := svc.Pets(r.Context())

		rows := make([]pageRow, 0, len(recs))
		for i, rec := range recs {
			row := pageRow{
				Row:       i,
				PetName:   rec.PetName,
				Treatment: rec.Treatment,
				WeightKg:  rec.WeightKg,
			}
			if d, err := rec.AppliedDate(); err == nil {
				row.AppliedDisplay = d.Format(schedule.DisplayDate)
			} else {
				row.AppliedDisplay = rec.Applied
			}
			if d, err := rec.NextDueDate(); err == nil {
				row.NextDueDisplay = d.Format(schedule.DisplayDate)
				left := schedule.DaysBetween(today, d)
				row.DueSoon = left >= 0 && left <= schedule.DefaultLookaheadDays
			} else {
				row.NextDueDisplay = rec.NextDue
			}
			rows = append(rows, row)
		}

		sortPageRows(rows)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = pageTmpl.Execute(w, pageData{
			Rows:       rows,
			Pets:       pets,
			Treatments: TreatmentCatalogue,
			Today:      today.Format(schedule.ISODate),
		})
	}
}

func sortPageRows(rows []pageRow) {
	// reuse the listing sort by going through the display format
	byDue := make([]recordResponse, len(rows))
	for i, r := range rows {
		byDue[i] = recordResponse{Row: i, NextDue: r.NextDueDisplay}
	}
	sortByNextDue(byDue)

	sorted := make([]pageRow, 0, len(rows))
	for _, r := range byDue {
		sorted = append(sorted, rows[r.Row])
	}
	copy(rows, sorted)
}
