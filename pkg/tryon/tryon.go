package tryon

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/furiarock/mockstudio/pkg/artwork"
	"github.com/furiarock/mockstudio/pkg/errors"
	"github.com/furiarock/mockstudio/pkg/garment"
	"github.com/furiarock/mockstudio/pkg/observability"
	"github.com/furiarock/mockstudio/pkg/project"
)

// Request is one try-on: the artwork of one zone and a photo of the user.
type Request struct {
	Design string // data URL
	Photo  []byte // PNG or JPEG, as uploaded
	Color  string
	View   garment.View
}

// RequestFromState builds a request from the selected zone of s. The zone
// must carry artwork.
func RequestFromState(s project.State, photo []byte) (Request, error) {
	l := s.SelectedLayer()
	if !l.HasImage() {
		return Request{}, errors.New(errors.ErrCodeInvalidInput, "upload a design to %s before using the try-on", garment.Lookup(l.Zone).Name)
	}
	return Request{
		Design: l.Image,
		Photo:  photo,
		Color:  s.Color,
		View:   garment.Lookup(l.Zone).View,
	}, nil
}

// Result is a generated photo.
type Result struct {
	Filename    string
	ContentType string
	Data        []byte
	Duration    time.Duration
}

// Service runs try-ons against a Client.
type Service struct {
	Client *Client
	Logger *log.Logger

	now func() time.Time
}

// NewService returns a service using c.
func NewService(c *Client, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{Client: c, Logger: logger, now: time.Now}
}

// Run generates the try-on photo for req while holding g. A second Run on
// the same guard fails with TRYON_BUSY until the first returns.
func (s *Service) Run(ctx context.Context, g *Guard, req Request) (res *Result, err error) {
	if err := g.Acquire(); err != nil {
		return nil, err
	}
	defer g.Release()

	start := s.now()
	hooks := observability.Export()
	hooks.OnTryOnStart(ctx, string(req.View))
	defer func() {
		hooks.OnTryOnComplete(ctx, string(req.View), time.Since(start), err)
	}()

	photo, err := artwork.PreparePhoto(req.Photo)
	if err != nil {
		return nil, err
	}
	designType, design, err := artwork.ParseDataURL(req.Design)
	if err != nil {
		return nil, err
	}

	parts := []Part{
		{Text: Prompt(req.Color, req.View)},
		{InlineData: &InlineData{MimeType: "image/jpeg", Data: base64.StdEncoding.EncodeToString(photo)}},
		{InlineData: &InlineData{MimeType: designType, Data: base64.StdEncoding.EncodeToString(design)}},
	}

	data, mimeType, err := s.Client.Generate(ctx, parts)
	if err != nil {
		s.Logger.Warn("try-on failed", "view", req.View, "err", err)
		return nil, err
	}

	res = &Result{
		Filename:    Filename(start),
		ContentType: mimeType,
		Data:        data,
		Duration:    time.Since(start),
	}
	s.Logger.Info("generated try-on", "view", req.View, "bytes", len(data), "duration", res.Duration)
	return res, nil
}

// Filename names a try-on result generated at t.
func Filename(t time.Time) string {
	return fmt.Sprintf("furia-rock-ai-%d.png", t.UnixMilli())
}
