package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aurtools/aurinfo/pkg/aur"
)

type ctxKey int

const requestIDKey ctxKey = 0

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePackage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	rec := s.meta.SrcInfo(r.Context(), name)
	if len(rec) == 0 {
		writeError(w, http.StatusNotFound, "no metadata available for "+name)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDepends(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	deps, err := s.meta.RequiredDeps(r.Context(), name)
	if errors.Is(err, aur.ErrPackageNotFound) {
		writeError(w, http.StatusNotFound, "no metadata available for "+name)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if deps == nil {
		deps = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    name,
		"arch":    s.meta.Arch(),
		"depends": deps,
	})
}

func (s *Server) handleUpdateData(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	hint := r.URL.Query().Get("version")
	writeJSON(w, http.StatusOK, s.meta.UpdateData(r.Context(), name, hint, nil))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if term == "" {
		writeError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}
	results, err := s.meta.Search(r.Context(), term)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	if results == nil {
		results = []aur.Package{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"term":    term,
		"results": results,
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	names := s.meta.Index(r.Context())
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"packages": names})
}

func (s *Server) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	if err := s.meta.ClearCache(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
