package compose

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/furiarock/mockstudio/pkg/cache"
	"github.com/furiarock/mockstudio/pkg/errors"
	"github.com/furiarock/mockstudio/pkg/garment"
	"github.com/furiarock/mockstudio/pkg/layer"
	"github.com/furiarock/mockstudio/pkg/observability"
	"github.com/furiarock/mockstudio/pkg/project"
	"github.com/furiarock/mockstudio/pkg/render/draw"
	"github.com/furiarock/mockstudio/pkg/render/scene"
	"github.com/furiarock/mockstudio/pkg/render/silhouette"
	"github.com/furiarock/mockstudio/pkg/render/sink"
)

// DefaultFilename is used when the project has no usable name.
const DefaultFilename = "mockup"

// Request describes one export.
type Request struct {
	View        garment.View
	Color       string
	Layers      layer.Set
	ProjectName string
	Watermark   bool
	Format      sink.Format
}

// RequestFromState builds an export request for the current view of s.
// Exports are refused while s is in comparison mode.
func RequestFromState(s project.State, format sink.Format) (Request, error) {
	if err := s.ExportBlocked(); err != nil {
		return Request{}, err
	}
	return Request{
		View:        s.View,
		Color:       s.Color,
		Layers:      s.Layers,
		ProjectName: s.Name,
		Watermark:   s.ShowWatermark,
		Format:      format,
	}, nil
}

// Filename returns "{name}-{view}.{ext}", falling back to "mockup" when the
// name is blank or unsafe.
func (r Request) Filename() string {
	name := errors.SanitizeFilename(r.ProjectName)
	if name == "" {
		name = DefaultFilename
	}
	return fmt.Sprintf("%s-%s.%s", name, r.View, r.Format.Ext())
}

// Result is an encoded mockup.
type Result struct {
	Filename    string
	ContentType string
	Data        []byte
	Cached      bool
	Duration    time.Duration
}

// Exporter renders mockups with caching.
//
// Exporter holds no per-export state. One value can serve concurrent
// exports.
type Exporter struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Size is the raster edge length in pixels.
	Size int
	// Background fills the canvas behind the garment.
	Background color.NRGBA
	// WatermarkText replaces the default watermark text when set.
	WatermarkText string
	// Decoder overrides how artwork data URLs are decoded.
	Decoder sink.Decoder
	// TTL is how long exported artifacts stay cached. Zero uses
	// cache.TTLArtifact.
	TTL time.Duration
}

// NewExporter creates an exporter with the default size and a white
// background. A nil cache disables caching; a nil keyer uses the default.
func NewExporter(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Exporter {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Exporter{
		Cache:      c,
		Keyer:      keyer,
		Logger:     logger,
		Size:       sink.DefaultRasterSize,
		Background: draw.White,
	}
}

// Export renders req into an encoded bitmap.
//
// A failure anywhere aborts the export and returns no data: an unknown view
// or non-positive size gives RENDER_SURFACE_NOT_READY, unreadable artwork
// gives DECODE_FAILURE.
func (e *Exporter) Export(ctx context.Context, req Request) (res *Result, err error) {
	if req.Format == "" {
		req.Format = sink.FormatPNG
	}
	if !req.Format.Raster() {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "cannot export %s; use png or webp", req.Format)
	}
	if !req.View.Valid() {
		return nil, errors.New(errors.ErrCodeRenderSurface, "no render surface for view %q", req.View)
	}
	if e.Size <= 0 {
		return nil, errors.New(errors.ErrCodeRenderSurface, "render surface size %d is not positive", e.Size)
	}

	start := time.Now()
	hooks := observability.Export()
	hooks.OnExportStart(ctx, string(req.View), string(req.Format))
	defer func() {
		size := 0
		if res != nil {
			size = len(res.Data)
		}
		hooks.OnExportComplete(ctx, string(req.View), string(req.Format), size, time.Since(start), err)
	}()

	frame := e.exportFrame(req)
	key := e.Keyer.ArtifactKey(frameHash(frame), cache.ArtifactKeyOpts{Format: string(req.Format), Size: e.Size})
	res = &Result{Filename: req.Filename(), ContentType: req.Format.ContentType()}

	if data, hit, cerr := e.Cache.Get(ctx, key); cerr == nil && hit {
		observability.Cache().OnCacheHit(ctx, "artifact")
		res.Data, res.Cached, res.Duration = data, true, time.Since(start)
		e.Logger.Debug("export cache hit", "view", req.View, "format", req.Format)
		return res, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	s, err := BuildScene(frame)
	if err != nil {
		return nil, err
	}
	opts := []sink.RasterOption{sink.WithRasterSize(e.Size)}
	if e.Decoder != nil {
		opts = append(opts, sink.WithDecoder(e.Decoder))
	}
	img, err := sink.Rasterize(ctx, s, opts...)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := req.Format.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode %s", req.Format)
	}
	res.Data = buf.Bytes()
	res.Duration = time.Since(start)

	ttl := e.TTL
	if ttl <= 0 {
		ttl = cache.TTLArtifact
	}
	if err := e.Cache.Set(ctx, key, res.Data, ttl); err == nil {
		observability.Cache().OnCacheSet(ctx, "artifact", len(res.Data))
	}

	e.Logger.Info("exported mockup",
		"view", req.View,
		"format", req.Format,
		"placements", len(s.Placements),
		"bytes", len(res.Data),
		"duration", res.Duration)
	return res, nil
}

func (e *Exporter) exportFrame(req Request) Frame {
	f := Frame{
		View:       req.View,
		Color:      req.Color,
		Background: e.Background,
		Layers:     req.Layers,
	}
	if req.Watermark {
		f.Watermark = watermarkOrDefault(e.WatermarkText)
	}
	return f
}

// Preview renders the live preview of s as SVG.
func (e *Exporter) Preview(ctx context.Context, s project.State) ([]byte, error) {
	f := PreviewFrame(s, e.WatermarkText)
	key := e.Keyer.PreviewKey(frameHash(f))
	if data, hit, err := e.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "preview")
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, "preview")

	sc, err := BuildScene(f)
	if err != nil {
		return nil, err
	}
	data := sink.RenderSVG(sc, sink.WithInteractive())
	if err := e.Cache.Set(ctx, key, data, cache.TTLPreview); err == nil {
		observability.Cache().OnCacheSet(ctx, "preview", len(data))
	}
	return data, nil
}

// Garment renders one silhouette layer on its own as SVG.
func (e *Exporter) Garment(ctx context.Context, v garment.View, m silhouette.Mode, colorHex string) ([]byte, error) {
	colorHex, err := garment.NormalizeColor(colorHex)
	if err != nil {
		return nil, err
	}
	key := e.Keyer.GarmentKey(string(v), string(m), colorHex)
	if data, hit, err := e.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "garment")
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, "garment")

	data, err := GarmentSVG(v, m, colorHex)
	if err != nil {
		return nil, err
	}
	if err := e.Cache.Set(ctx, key, data, cache.TTLGarment); err == nil {
		observability.Cache().OnCacheSet(ctx, "garment", len(data))
	}
	return data, nil
}

// GarmentSVG renders the silhouette layer m of view v on a transparent
// canvas.
func GarmentSVG(v garment.View, m silhouette.Mode, colorHex string) ([]byte, error) {
	c, err := garment.ParseColor(colorHex)
	if err != nil {
		return nil, err
	}
	d, err := silhouette.Render(v, m, c)
	if err != nil {
		return nil, err
	}
	s := scene.Scene{View: v}
	if m == silhouette.Base {
		s.Base = d
	} else {
		s.Shadows = d
	}
	return sink.RenderSVG(s, sink.WithoutBackground()), nil
}

// Prerender fills the cache with every silhouette layer in each of colors.
// Layers are rendered concurrently; the first failure cancels the rest.
func (e *Exporter) Prerender(ctx context.Context, colors ...string) error {
	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	n := 0
	for _, c := range colors {
		for _, v := range garment.Views() {
			for _, m := range []silhouette.Mode{silhouette.Base, silhouette.Shadows} {
				n++
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					_, err := e.Garment(ctx, v, m, c)
					return err
				})
			}
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}
	e.Logger.Debug("prerendered garment layers", "layers", n, "duration", time.Since(start))
	return nil
}

// frameHash identifies a frame for caching. Frames that hash equal render
// to identical output.
func frameHash(f Frame) string {
	data, _ := json.Marshal(f)
	return cache.Hash(data)
}
