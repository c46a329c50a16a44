package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/gridboard/pkg/buildinfo"
	errs "github.com/matzehuels/gridboard/pkg/errors"
	"github.com/matzehuels/gridboard/pkg/grid"
	"github.com/matzehuels/gridboard/pkg/render"
	"github.com/matzehuels/gridboard/pkg/service"
)

type healthResponse struct {
	Status string `json:"status"`
	buildinfo.Info
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Info: buildinfo.Get()})
}

// =============================================================================
// Stateless
// =============================================================================

func (s *Server) handlePack(w http.ResponseWriter, r *http.Request) {
	var req service.PackRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	res, err := s.svc.Pack(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type clampRequest struct {
	Offset    grid.Offset `json:"offset"`
	Box       grid.Box    `json:"box"`
	Container grid.Box    `json:"container"`
}

func (s *Server) handleClamp(w http.ResponseWriter, r *http.Request) {
	var req clampRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, grid.ClampOffset(req.Offset, req.Box, req.Container))
}

// =============================================================================
// Boards
// =============================================================================

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req service.CreateRequest
	// An empty body creates a default random board.
	if err := decode(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, err)
		return
	}
	v, err := s.svc.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Location", "/api/v1/boards/"+v.ID)
	writeJSON(w, http.StatusCreated, v)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	v, err := s.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type dragStartRequest struct {
	ID    string       `json:"id"`
	Delta *grid.Offset `json:"delta,omitempty"`
}

type dragStartResponse struct {
	Started bool          `json:"started"`
	Board   *service.View `json:"board"`
}

func (s *Server) handleDragStart(w http.ResponseWriter, r *http.Request) {
	var req dragStartRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	v, started, err := s.svc.DragStart(r.Context(), chi.URLParam(r, "id"), service.DragStartRequest{
		Component: req.ID,
		Delta:     req.Delta,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dragStartResponse{Started: started, Board: v})
}

type dragEndRequest struct {
	Active string `json:"active"`
	Over   string `json:"over"`
}

type dragEndResponse struct {
	Changed bool          `json:"changed"`
	Board   *service.View `json:"board"`
}

func (s *Server) handleDragEnd(w http.ResponseWriter, r *http.Request) {
	var req dragEndRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	v, changed, err := s.svc.DragEnd(r.Context(), chi.URLParam(r, "id"), req.Active, req.Over)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dragEndResponse{Changed: changed, Board: v})
}

func (s *Server) handleDragCancel(w http.ResponseWriter, r *http.Request) {
	v, err := s.svc.DragCancel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

type previewResponse struct {
	Offsets []grid.Offset `json:"offsets"`
}

// handlePreview returns one offset when index is given, else all of them.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	q := r.URL.Query()

	active, err := intParam(q.Get("active"), "active")
	if err != nil {
		writeError(w, err)
		return
	}
	over, err := intParam(q.Get("over"), "over")
	if err != nil {
		writeError(w, err)
		return
	}

	if q.Has("index") {
		index, err := intParam(q.Get("index"), "index")
		if err != nil {
			writeError(w, err)
			return
		}
		o, err := s.svc.PreviewOne(r.Context(), id, active, over, index)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, o)
		return
	}

	offsets, err := s.svc.Preview(r.Context(), id, active, over)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, previewResponse{Offsets: offsets})
}

func (s *Server) handleModify(w http.ResponseWriter, r *http.Request) {
	var req service.ModifyRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	o, err := s.svc.Modify(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := render.FormatSVG
	if f := r.URL.Query().Get("format"); f != "" {
		parsed, err := render.ParseFormat(f)
		if err != nil {
			writeError(w, err)
			return
		}
		format = parsed
	}
	s.render(w, r, format)
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, render.FormatSVG)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, format render.Format) {
	q := r.URL.Query()
	req := service.RenderRequest{
		Format: format,
		Labels: q.Get("labels") == "true" || q.Get("labels") == "1",
	}
	if q.Has("active") || q.Has("over") {
		active, err := intParam(q.Get("active"), "active")
		if err != nil {
			writeError(w, err)
			return
		}
		over, err := intParam(q.Get("over"), "over")
		if err != nil {
			writeError(w, err)
			return
		}
		req.Preview = &[2]int{active, over}
	}

	out, err := s.svc.Render(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func intParam(v, name string) (int, error) {
	if v == "" {
		return 0, errs.New(errs.ErrCodeInvalidInput, "missing query parameter %q", name)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errs.New(errs.ErrCodeInvalidInput, "query parameter %q must be an integer, got %q", name, v)
	}
	return n, nil
}
