// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/oskar-del/newbuild-homes-costa-blanca-sub013/internal/app"
	"github.com/oskar-del/newbuild-homes-costa-blanca-sub013/internal/domain"
)

type Handlers struct{ Catalog *app.CatalogService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// propertyGroup is the wire shape for the developer/area views: an
// ordered list rather than a JSON object, so first-encounter key order
// survives serialization.
type propertyGroup struct {
	Slug          string            `json:"slug"`
	PropertyCount int               `json:"propertyCount"`
	Properties    []domain.Property `json:"properties"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/properties", h.listProperties)
	s.mux.Get("/v1/developments", h.listDevelopments)
	s.mux.Get("/v1/developments/{slug}", h.getDevelopment)
	s.mux.Get("/v1/developers", h.listDevelopers)
	s.mux.Get("/v1/areas", h.listAreas)
	s.mux.Get("/v1/stats", h.stats)
	s.mux.Get("/v1/card-images", h.cardImages)
	s.mux.Post("/v1/cache/invalidate", h.invalidate)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeJSON handles ETag/304 short-circuiting for the catalog reads.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func (h *Handlers) listProperties(w http.ResponseWriter, r *http.Request) {
	// always a list, possibly empty; an empty catalog is a valid state
	writeJSON(w, r, h.Catalog.GetProperties(r.Context()))
}

func (h *Handlers) listDevelopments(w http.ResponseWriter, r *http.Request) {
	props := h.Catalog.GetProperties(r.Context())
	writeJSON(w, r, app.GroupByDevelopment(props))
}

func (h *Handlers) getDevelopment(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	props := h.Catalog.GetProperties(r.Context())
	for _, dev := range app.GroupByDevelopment(props) {
		if dev.Slug == slug {
			writeJSON(w, r, dev)
			return
		}
	}
	writeProblem(w, http.StatusNotFound, "Not Found", "development not found")
}

func (h *Handlers) listDevelopers(w http.ResponseWriter, r *http.Request) {
	props := h.Catalog.GetProperties(r.Context())
	writeJSON(w, r, groupsToWire(app.GroupByDeveloper(props)))
}

func (h *Handlers) listAreas(w http.ResponseWriter, r *http.Request) {
	props := h.Catalog.GetProperties(r.Context())
	writeJSON(w, r, groupsToWire(app.GroupByArea(props)))
}

func groupsToWire(groups *app.OrderedGroups) []propertyGroup {
	out := make([]propertyGroup, 0, groups.Len())
	for _, key := range groups.Keys() {
		members := groups.Get(key)
		out = append(out, propertyGroup{Slug: key, PropertyCount: len(members), Properties: members})
	}
	return out
}

func (h *Handlers) stats(w http.ResponseWriter, r *http.Request) {
	props := h.Catalog.GetProperties(r.Context())
	writeJSON(w, r, app.Stats(props))
}

func (h *Handlers) cardImages(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	development := q.Get("development")
	town := q.Get("town")
	if development == "" || town == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid request", "development and town are required")
		return
	}
	writeJSON(w, r, app.GetCardImages(q["url"], development, town))
}

func (h *Handlers) invalidate(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.Invalidate(r.Context()); err != nil {
		writeProblem(w, http.StatusInternalServerError, "Invalidate failed", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
