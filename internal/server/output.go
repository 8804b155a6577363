package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/furiarock/mockstudio/pkg/artwork"
	"github.com/furiarock/mockstudio/pkg/compose"
	"github.com/furiarock/mockstudio/pkg/errors"
	"github.com/furiarock/mockstudio/pkg/garment"
	"github.com/furiarock/mockstudio/pkg/quote"
	"github.com/furiarock/mockstudio/pkg/render/silhouette"
	"github.com/furiarock/mockstudio/pkg/render/sink"
	"github.com/furiarock/mockstudio/pkg/tryon"
)

const maxQRSize = 1024

func (s *Server) handleGarment(w http.ResponseWriter, r *http.Request) {
	v, err := garment.ParseView(chi.URLParam(r, "view"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	m, err := silhouette.ParseMode(chi.URLParam(r, "mode"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	c := r.URL.Query().Get("color")
	if c == "" {
		c = garment.DefaultColor
	}
	data, err := s.Exporter.Garment(r.Context(), v, m, c)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", sink.FormatSVG.ContentType())
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(data)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	data, err := s.Exporter.Preview(r.Context(), sess.Snapshot())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", sink.FormatSVG.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(data)
}

// handleExport renders the current view as a download. It works on the
// snapshot taken when the request arrived.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	format := s.DefaultFormat
	if q := r.URL.Query().Get("format"); q != "" {
		f, err := sink.ParseFormat(q)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		format = f
	}
	req, err := compose.RequestFromState(sess.Snapshot(), format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.Exporter.Export(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("X-Cache", cacheStatus(res.Cached))
	writeFile(w, res.ContentType, res.Filename, res.Data)
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

// handleTryOn sends the selected zone's design and the multipart "photo" to
// the try-on service. A second request for the same project while one is
// running fails with TRYON_BUSY.
func (s *Server) handleTryOn(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	if s.TryOn == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeUnauthorized, "the try-on service is not configured"))
		return
	}
	photo, err := formFile(w, r, "photo", artwork.MaxPhotoBytes, artwork.ReadPhoto)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	req, err := tryon.RequestFromState(sess.Snapshot(), photo)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.TryOn.Run(r.Context(), &sess.Guard, req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeFile(w, res.ContentType, res.Filename, res.Data)
}

type quoteResponse struct {
	Message string       `json:"message"`
	Link    string       `json:"link"`
	Size    garment.Size `json:"size"`
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	st := sess.Snapshot()
	s.writeJSON(w, http.StatusOK, quoteResponse{
		Message: quote.Message(st.Name, st.Size),
		Link:    quote.Link(st.Name, st.Size),
		Size:    st.Size,
	})
}

func (s *Server) handleQuoteQR(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	size := quote.DefaultQRSize
	if q := r.URL.Query().Get("size"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n <= 0 || n > maxQRSize {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "size must be between 1 and %d", maxQRSize))
			return
		}
		size = n
	}
	st := sess.Snapshot()
	png, err := quote.QR(quote.Link(st.Name, st.Size), size)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", sink.FormatPNG.ContentType())
	_, _ = w.Write(png)
}
