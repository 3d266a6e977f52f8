package router

import (
	"net/http"
	"time"

	mem "patilog/internal/adapters/storage/memory"
	"patilog/internal/domain/records"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Options struct {
	// Repo is the backing store; nil falls back to in-memory (dev/tests).
	Repo records.Repository

	// Now is injectable for tests; nil means time.Now.
	Now func() time.Time
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	repo := opts.Repo
	if repo == nil {
		repo = mem.NewRecordsRepo()
	}

	svc := records.NewService(repo)

	records.RegisterRoutes(r, svc, opts.Now)
	r.Get("/", records.PageHandler(svc, opts.Now))

	return r
}
