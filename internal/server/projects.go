package server

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	"github.com/furiarock/mockstudio/pkg/artwork"
	"github.com/furiarock/mockstudio/pkg/errors"
	"github.com/furiarock/mockstudio/pkg/layer"
	"github.com/furiarock/mockstudio/pkg/placement"
	"github.com/furiarock/mockstudio/pkg/project"
	"github.com/furiarock/mockstudio/pkg/session"
)

// multipartOverhead is the slack allowed above the file limit for the
// multipart envelope.
const multipartOverhead = 1 << 20

type projectResponse struct {
	ID      string `json:"id"`
	HasWork bool   `json:"hasWork"`
	project.State
}

func newProjectResponse(id string, st project.State) projectResponse {
	return projectResponse{ID: id, HasWork: st.HasWork(), State: st}
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	sess := s.Store.Create()
	s.Logger.Debug("project created", "id", sess.ID)
	w.Header().Set("Location", "/api/projects/"+sess.ID)
	s.writeJSON(w, http.StatusCreated, newProjectResponse(sess.ID, sess.Snapshot()))
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, newProjectResponse(sess.ID, sess.Snapshot()))
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	s.Store.Delete(sess.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePatchProject(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var p project.Patch
	if err := decodeJSON(r, &p); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.update(w, r, sess, p.Apply)
}

// handleResetProject starts over. A project with artwork is only discarded
// when the request carries confirm=true.
func (s *Server) handleResetProject(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	confirm, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	if !confirm && sess.Snapshot().HasWork() {
		s.writeError(w, r, errors.New(errors.ErrCodeConflict, "the project has artwork: resend with confirm=true to discard it"))
		return
	}
	st := sess.Reset()
	s.writeJSON(w, http.StatusOK, newProjectResponse(sess.ID, st))
}

// layerRequest is the body of a layer PATCH: slider positions plus the
// visibility toggle. Artwork fields are only decoded to reject them.
type layerRequest struct {
	placement.SliderValues
	Visible    *bool            `json:"visible,omitempty"`
	Image      *json.RawMessage `json:"image,omitempty"`
	ClearImage bool             `json:"clearImage,omitempty"`
}

// handlePatchLayer applies slider values through the same clamping and
// rounding as the editor's sliders. Artwork is only set through the upload
// endpoint.
func (s *Server) handlePatchLayer(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	zone, err := zoneParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req layerRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Image != nil || req.ClearImage {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "artwork is changed through /layers/%s/artwork", zone))
		return
	}
	p, err := req.Patch()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p.Visible = req.Visible
	s.update(w, r, sess, func(st project.State) (project.State, error) {
		return st.UpdateLayer(zone, p)
	})
}

func (s *Server) handleResetLayer(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	zone, err := zoneParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.update(w, r, sess, func(st project.State) (project.State, error) {
		return st.ResetLayer(zone)
	})
}

// handleUploadArtwork stores the multipart "file" as the zone's artwork and
// resets its transform. Oversized, non-PNG/JPEG and undecodable files leave
// the layer unchanged.
func (s *Server) handleUploadArtwork(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	zone, err := zoneParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := formFile(w, r, "file", artwork.MaxUploadBytes, artwork.Read)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	url, err := artwork.Encode(data)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if _, _, err := artwork.DecodeConfig(url); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.Logger.Debug("artwork uploaded", "id", sess.ID, "zone", zone, "bytes", len(data))
	s.update(w, r, sess, func(st project.State) (project.State, error) {
		return st.UpdateLayer(zone, layer.UploadPatch(url))
	})
}

func (s *Server) handleRemoveArtwork(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	zone, err := zoneParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.update(w, r, sess, func(st project.State) (project.State, error) {
		return st.UpdateLayer(zone, layer.RemoveImagePatch())
	})
}

type pointerResponse struct {
	Drag  string        `json:"drag"`
	State project.State `json:"state"`
}

func (s *Server) handlePointer(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var ev session.PointerEvent
	if err := decodeJSON(r, &ev); err != nil {
		s.writeError(w, r, err)
		return
	}
	st, ds, err := sess.Pointer(ev)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, pointerResponse{Drag: ds.String(), State: st})
}

// update runs fn against the session and writes the resulting state.
func (s *Server) update(w http.ResponseWriter, r *http.Request, sess *session.Session, fn func(project.State) (project.State, error)) {
	st, err := sess.Update(fn)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newProjectResponse(sess.ID, st))
}

// formFile reads the multipart file field of r with read, failing with
// FILE_TOO_LARGE when the request body exceeds limit bytes plus the
// multipart envelope.
func formFile(w http.ResponseWriter, r *http.Request, field string, limit int64, read func(io.Reader) ([]byte, error)) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)
	if err := r.ParseMultipartForm(limit + multipartOverhead); err != nil {
		var tooBig *http.MaxBytesError
		if stderrors.As(err, &tooBig) {
			return nil, errors.New(errors.ErrCodeFileTooLarge, "upload exceeds the %dMB limit", limit>>20)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "expected a multipart form with a %q file", field)
	}
	f, _, err := r.FormFile(field)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "missing %q file", field)
	}
	defer f.Close()
	return read(f)
}
