// Package apitest provides an in-process fake of the revenue-recognition
// backend for tests.
package apitest

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/revrec/internal/contract"
)

// Upload is one file received on the upload route.
type Upload struct {
	FileName    string
	ContentType string
	Body        []byte
	// RequestContentType is the Content-Type of the whole request.
	RequestContentType string
}

type Backend struct {
	mu sync.Mutex

	contracts  []contract.Contract
	schedules  map[string][]contract.RevenueScheduleEntry
	memos      map[string][]contract.AuditMemo
	structured map[string]*contract.StructuredAuditMemo
	statuses   map[string]*contract.ContractStatus
	failures   map[string]int

	uploadStatus contract.Status

	uploads  []Upload
	hits     map[string]int
	requests []*http.Request

	server *httptest.Server
}

// New starts a fake backend. It is shut down when the test ends.
func New(t interface{ Cleanup(func()) }) *Backend {
	b := &Backend{
		schedules:  make(map[string][]contract.RevenueScheduleEntry),
		memos:      make(map[string][]contract.AuditMemo),
		structured: make(map[string]*contract.StructuredAuditMemo),
		statuses:   make(map[string]*contract.ContractStatus),
		failures:   make(map[string]int),
		hits:       make(map[string]int),

		uploadStatus: contract.StatusUploaded,
	}

	b.server = httptest.NewServer(b.routes())
	t.Cleanup(b.server.Close)

	return b
}

func (b *Backend) URL() string {
	return b.server.URL
}

func (b *Backend) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	// The real backend allows every origin; keep the same headers here.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
	r.Use(b.record)

	r.Get("/health", b.health)
	r.Post("/contracts/upload", b.upload)
	r.Get("/contracts", b.listContracts)

	r.Route("/contracts/{ref}", func(r chi.Router) {
		r.Get("/", b.getContract)
		r.Get("/revenue-schedules", b.listSchedules)
		r.Get("/audit-memos", b.listMemos)
		r.Get("/audit-memos/structured", b.getStructured)
		r.Get("/status", b.getStatus)
	})

	return r
}

func (b *Backend) SetContracts(cs ...contract.Contract) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.contracts = cs
}

func (b *Backend) SetSchedules(ref string, entries ...contract.RevenueScheduleEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.schedules[ref] = entries
}

func (b *Backend) SetMemos(ref string, memos ...contract.AuditMemo) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.memos[ref] = memos
}

func (b *Backend) SetStructuredMemo(ref string, m *contract.StructuredAuditMemo) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.structured[ref] = m
}

func (b *Backend) SetStatus(ref string, s *contract.ContractStatus) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.statuses[ref] = s
}

// SetUploadStatus sets the status new uploads are created with.
func (b *Backend) SetUploadStatus(s contract.Status) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.uploadStatus = s
}

// Fail makes every request to path answer with code.
func (b *Backend) Fail(path string, code int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures[path] = code
}

func (b *Backend) Hits(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.hits[path]
}

func (b *Backend) Uploads() []Upload {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]Upload(nil), b.uploads...)
}

// LastRequest returns the most recent request received, or nil.
func (b *Backend) LastRequest() *http.Request {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.requests) == 0 {
		return nil
	}

	return b.requests[len(b.requests)-1]
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.hits[r.URL.Path]++
		b.requests = append(b.requests, r.Clone(r.Context()))
		code, fail := b.failures[r.URL.Path]
		b.mu.Unlock()

		if fail {
			http.Error(w, http.StatusText(code), code)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (b *Backend) upload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	body, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id := uuid.New().String()

	b.mu.Lock()
	b.uploads = append(b.uploads, Upload{
		FileName:           header.Filename,
		ContentType:        header.Header.Get("Content-Type"),
		Body:               body,
		RequestContentType: r.Header.Get("Content-Type"),
	})
	b.contracts = append(b.contracts, contract.Contract{
		ID:         int64(len(b.contracts) + 1),
		ExternalID: id,
		FileName:   header.Filename,
		Status:     b.uploadStatus,
	})
	b.mu.Unlock()

	writeJSON(w, map[string]string{
		"message":     "Contract uploaded successfully. Processing started in background.",
		"contract_id": id,
		"task_id":     uuid.New().String(),
		"status":      string(contract.StatusUploaded),
	})
}

func (b *Backend) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]any{
		"message":      "Revenue Automation API is running",
		"status":       "healthy",
		"cors_enabled": true,
		"endpoints": []string{
			"GET /contracts",
			"POST /contracts/upload",
			"GET /contracts/{id}",
			"GET /contracts/{id}/revenue-schedules",
			"GET /contracts/{id}/audit-memos",
		},
	})
}

func (b *Backend) listContracts(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	out := append([]contract.Contract{}, b.contracts...)
	b.mu.Unlock()

	writeJSON(w, out)
}

func (b *Backend) getContract(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, c := range b.contracts {
		if c.ExternalID == ref || strconv.FormatInt(c.ID, 10) == ref {
			writeJSON(w, c)
			return
		}
	}

	http.Error(w, "Contract not found", http.StatusNotFound)
}

func (b *Backend) listSchedules(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	out := append([]contract.RevenueScheduleEntry{}, b.schedules[chi.URLParam(r, "ref")]...)
	b.mu.Unlock()

	writeJSON(w, out)
}

func (b *Backend) listMemos(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	out := append([]contract.AuditMemo{}, b.memos[chi.URLParam(r, "ref")]...)
	b.mu.Unlock()

	writeJSON(w, out)
}

func (b *Backend) getStructured(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	m, ok := b.structured[chi.URLParam(r, "ref")]
	b.mu.Unlock()

	if !ok {
		http.Error(w, "Audit memo not found", http.StatusNotFound)
		return
	}

	writeJSON(w, m)
}

// getStatus answers from SetStatus when set, and from the contract record
// otherwise.
func (b *Backend) getStatus(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")

	b.mu.Lock()
	defer b.mu.Unlock()

	if s, ok := b.statuses[ref]; ok {
		writeJSON(w, s)
		return
	}

	for _, c := range b.contracts {
		if c.ExternalID == ref || strconv.FormatInt(c.ID, 10) == ref {
			writeJSON(w, contract.ContractStatus{
				ContractID:   ref,
				Status:       c.Status,
				FileName:     c.FileName,
				CustomerName: c.CustomerName,
				TotalValue:   c.TotalValue,
				Currency:     c.Currency,
				CreatedAt:    c.CreatedAt,
				UpdatedAt:    c.UpdatedAt,
			})

			return
		}
	}

	http.Error(w, "Contract not found", http.StatusNotFound)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
