package api

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pprehq/rawdb/pkg/codec"
	"github.com/pprehq/rawdb/pkg/recordio"
)

// handleHealth reports service liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, map[string]string{"status": "ok"})
}

// handleListLayouts returns the names of all registered layouts.
func (s *Server) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, map[string]any{"layouts": s.registry.Names()})
}

// handleDescribeLayout returns field details for one layout.
func (s *Server) handleDescribeLayout(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	layout, ok := s.registry.Get(name)
	if !ok {
		sendError(w, "unknown layout: "+name, http.StatusNotFound)
		return
	}

	fields := make([]FieldResponse, 0, layout.NumFields())
	for _, f := range layout.Fields() {
		fields = append(fields, FieldResponse{
			Name:  f.Name,
			Kind:  f.Kind.String(),
			Width: f.Width,
			Order: f.Order.String(),
		})
	}

	sendSuccess(w, LayoutResponse{
		Name:        layout.Name(),
		Size:        layout.Size(),
		Fields:      fields,
		Description: layout.Describe(),
	})
}

// handleDecode decodes one hex-encoded record.
func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	var req DecodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	layout, ok := s.registry.Get(req.Layout)
	if !ok {
		sendError(w, "unknown layout: "+req.Layout, http.StatusNotFound)
		return
	}

	buf, err := hex.DecodeString(req.Data)
	if err != nil {
		sendError(w, "data is not valid hex: "+err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	rec, err := codec.NewRecordCodec(layout).Decode(buf)
	s.metrics.RecordCodecOperation("decode", layout.Name(), err == nil, time.Since(start))
	if err != nil {
		sendError(w, err.Error(), codecStatus(err))
		return
	}

	obj, err := recordio.RecordToJSON(layout, rec)
	if err != nil {
		sendError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	sendSuccess(w, DecodeResponse{Layout: layout.Name(), Record: obj})
}

// handleEncode encodes one record to hex.
func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber() // keep 64-bit field values exact
	var req EncodeRequest
	if err := dec.Decode(&req); err != nil {
		sendError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	layout, ok := s.registry.Get(req.Layout)
	if !ok {
		sendError(w, "unknown layout: "+req.Layout, http.StatusNotFound)
		return
	}

	rec, err := recordio.RecordFromJSON(layout, req.Record)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	buf, err := codec.NewRecordCodec(layout).Encode(rec)
	s.metrics.RecordCodecOperation("encode", layout.Name(), err == nil, time.Since(start))
	if err != nil {
		sendError(w, err.Error(), codecStatus(err))
		return
	}

	sendSuccess(w, EncodeResponse{Layout: layout.Name(), Data: hex.EncodeToString(buf)})
}

// codecStatus maps codec failures onto HTTP statuses. They are all caller
// mistakes.
func codecStatus(err error) int {
	switch {
	case errors.Is(err, codec.ErrSizeMismatch),
		errors.Is(err, codec.ErrMissingField),
		errors.Is(err, codec.ErrValueOutOfRange),
		errors.Is(err, codec.ErrDecode):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
