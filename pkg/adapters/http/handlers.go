package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/expect"
	"github.com/aretw0/expect/pkg/ports"
	"github.com/aretw0/expect/pkg/schema"
	"github.com/go-chi/chi/v5"
)

// maxBodySize bounds request bodies (schema documents and payloads).
const maxBodySize = 4 << 20

// ValidateRequest is the body of POST /validate. Exactly one of Schema
// (an inline JSON schema document) and SchemaName must be set.
type ValidateRequest struct {
	Schema     json.RawMessage `json:"schema,omitempty"`
	SchemaName string          `json:"schema_name,omitempty"`
	Value      any             `json:"value"`
}

// ValidateResponse reports a validation outcome. Failures are outcomes,
// not errors, so they are returned with 200.
type ValidateResponse struct {
	OK      bool          `json:"ok"`
	Message string        `json:"message"`
	Path    string        `json:"path,omitempty"`
	Result  schema.Result `json:"result"`
}

// Validate handles POST /validate.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	var body ValidateRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		slog.Warn("Validate: invalid request body", "error", err, "request_id", RequestID(r.Context()))
		return
	}

	hasInline := len(bytes.TrimSpace(body.Schema)) > 0 && string(bytes.TrimSpace(body.Schema)) != "null"
	if hasInline == (body.SchemaName != "") {
		writeError(w, r, http.StatusBadRequest, `set exactly one of "schema" and "schema_name"`)
		return
	}

	var res schema.Result
	if hasInline {
		res = s.Validator.ValidateRaw(r.Context(), body.Value, []byte(body.Schema))
	} else {
		var err error
		res, err = s.Validator.ValidateNamed(r.Context(), body.SchemaName, body.Value)
		if err != nil {
			s.storeError(w, r, err)
			return
		}
	}

	writeJSON(w, r, http.StatusOK, ValidateResponse{
		OK:      res.OK(),
		Message: res.String(),
		Path:    res.Path(),
		Result:  res,
	})
}

// ListPatterns handles GET /patterns.
func (s *Server) ListPatterns(w http.ResponseWriter, r *http.Request) {
	reg := s.Validator.Registry()
	patterns := make(map[string]string, reg.Len())
	for _, name := range reg.Names() {
		patterns[name], _ = reg.Lookup(name)
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"patterns": patterns})
}

// GetPattern handles GET /patterns/{name}.
func (s *Server) GetPattern(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	src, ok := s.Validator.LookupPattern(name)
	if !ok {
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("unknown pattern %q", name))
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"name": name, "source": src})
}

// ExpandRequest is the body of POST /patterns/expand.
type ExpandRequest struct {
	Format string `json:"format"`
}

// ExpandResponse carries the expanded format and whether it compiles.
type ExpandResponse struct {
	Format   string `json:"format"`
	Expanded string `json:"expanded"`
	Valid    bool   `json:"valid"`
	Error    string `json:"error,omitempty"`
}

// ExpandPattern handles POST /patterns/expand.
func (s *Server) ExpandPattern(w http.ResponseWriter, r *http.Request) {
	var body ExpandRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	resp := ExpandResponse{
		Format:   body.Format,
		Expanded: s.Validator.ExpandFormat(body.Format),
		Valid:    true,
	}
	if _, err := s.Validator.CompilePattern(body.Format); err != nil {
		resp.Valid = false
		resp.Error = err.Error()
	}
	writeJSON(w, r, http.StatusOK, resp)
}

// ListSchemas handles GET /schemas.
func (s *Server) ListSchemas(w http.ResponseWriter, r *http.Request) {
	names, err := s.Validator.ListSchemas(r.Context())
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"schemas": names})
}

// GetSchema handles GET /schemas/{name}. The document is returned as stored.
func (s *Server) GetSchema(w http.ResponseWriter, r *http.Request) {
	doc, err := s.Validator.SchemaDocument(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.storeError(w, r, err)
		return
	}

	if trimmed := bytes.TrimSpace(doc); len(trimmed) > 0 && trimmed[0] == '{' {
		w.Header().Set("Content-Type", "application/json")
	} else {
		w.Header().Set("Content-Type", "application/yaml")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

// PutSchema handles PUT /schemas/{name} with a YAML or JSON document body.
func (s *Server) PutSchema(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	doc, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "failed to read body")
		return
	}

	parsed, err := s.Validator.SaveSchema(r.Context(), name, doc)
	if err != nil {
		if schema.IsSchemaError(err) {
			writeJSON(w, r, http.StatusUnprocessableEntity, errorResponse{
				Error:     err.Error(),
				RequestID: RequestID(r.Context()),
				Result:    schema.ResultFromError(err),
			})
			return
		}
		s.storeError(w, r, err)
		return
	}

	slog.Info("schema stored", "schema", name, "request_id", RequestID(r.Context()))
	s.Notify(name)
	writeJSON(w, r, http.StatusOK, map[string]any{"name": name, "fields": parsed.Keys()})
}

// DeleteSchema handles DELETE /schemas/{name}.
func (s *Server) DeleteSchema(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.Validator.DeleteSchema(r.Context(), name); err != nil {
		s.storeError(w, r, err)
		return
	}
	s.Notify(name)
	w.WriteHeader(http.StatusNoContent)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"app":      "expect-http",
		"version":  strings.TrimSpace(expect.Version),
		"patterns": s.Validator.Registry().Len(),
		"store":    s.Validator.Store() != nil,
	})
}

// GetOpenAPI handles GET /openapi.json.
func (s *Server) GetOpenAPI(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.spec)
}

func (s *Server) storeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ports.ErrSchemaNotFound):
		writeError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, ports.ErrInvalidName):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, expect.ErrNoStore):
		writeError(w, r, http.StatusNotImplemented, err.Error())
	default:
		writeError(w, r, http.StatusInternalServerError, "schema store failure")
		slog.Error("schema store failed", "error", err, "path", r.URL.Path, "request_id", RequestID(r.Context()))
	}
}
