package tryon

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	stderrors "errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/furiarock/mockstudio/pkg/artwork"
	"github.com/furiarock/mockstudio/pkg/errors"
	"github.com/furiarock/mockstudio/pkg/garment"
	"github.com/furiarock/mockstudio/pkg/layer"
	"github.com/furiarock/mockstudio/pkg/project"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.NRGBA{R: 200, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestPoseInstruction(t *testing.T) {
	tests := []struct {
		view garment.View
		want string
	}{
		{garment.Front, "facing the camera directly"},
		{garment.Back, "BACK facing the camera"},
		{garment.Left, "LEFT arm"},
		{garment.Right, "RIGHT arm"},
	}
	for _, tt := range tests {
		got := PoseInstruction(tt.view)
		if !strings.Contains(got, tt.want) {
			t.Errorf("PoseInstruction(%s) = %q, want it to mention %q", tt.view, got, tt.want)
		}
		if got != PoseInstruction(tt.view) {
			t.Errorf("PoseInstruction(%s) not deterministic", tt.view)
		}
	}
}

func TestPrompt(t *testing.T) {
	p := Prompt("#1f2937", garment.Back)
	for _, want := range []string{"plain #1f2937 cotton t-shirt", "POSE REQUIREMENT: CRITICAL: Generate the person standing with their BACK"} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestGuard(t *testing.T) {
	var g Guard
	if err := g.Acquire(); err != nil {
		t.Fatal(err)
	}
	if !g.Busy() {
		t.Error("guard not busy after Acquire")
	}
	if err := g.Acquire(); !errors.Is(err, errors.ErrCodeBusy) {
		t.Errorf("second Acquire = %v, want TRYON_BUSY", err)
	}
	g.Release()
	if err := g.Acquire(); err != nil {
		t.Errorf("Acquire after Release: %v", err)
	}
}

func TestRequestFromState(t *testing.T) {
	s := project.New()
	if _, err := RequestFromState(s, nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("no artwork: err = %v", err)
	}

	url, _ := artwork.Encode(pngBytes(t))
	s, _ = s.UpdateLayer(garment.SleeveLeft, layer.UploadPatch(url))
	s, _ = s.SelectZone(garment.SleeveLeft)
	s.Color = "#000000"

	req, err := RequestFromState(s, []byte("photo"))
	if err != nil {
		t.Fatal(err)
	}
	if req.View != garment.Left || req.Design != url || req.Color != "#000000" {
		t.Errorf("req = %+v", req)
	}
}

type fakeAPI struct {
	mu       sync.Mutex
	calls    int
	body     generateRequest
	key      string
	path     string
	status   int
	response string
	header   http.Header
	block    chan struct{}
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.calls++
	f.key = r.Header.Get("x-goog-api-key")
	f.path = r.URL.Path
	_ = json.NewDecoder(r.Body).Decode(&f.body)
	status, response, block := f.status, f.response, f.block
	for k, v := range f.header {
		w.Header()[k] = v
	}
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, response)
}

func imageResponse(data []byte) string {
	return `{"candidates":[{"content":{"parts":[` +
		`{"text":"here you go"},` +
		`{"inlineData":{"mimeType":"image/png","data":"` + base64.StdEncoding.EncodeToString(data) + `"}}` +
		`]}}]}`
}

func newService(t *testing.T, api *fakeAPI) *Service {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	s := NewService(NewClient("secret", WithEndpoint(srv.URL+"/")), log.New(io.Discard))
	s.now = func() time.Time { return time.UnixMilli(1700000000123) }
	return s
}

func testRequest(t *testing.T) Request {
	design, _ := artwork.Encode(pngBytes(t))
	return Request{Design: design, Photo: pngBytes(t), Color: "#ffffff", View: garment.Front}
}

func TestRun(t *testing.T) {
	generated := []byte("\x89PNG generated")
	api := &fakeAPI{response: imageResponse(generated)}
	s := newService(t, api)

	var g Guard
	res, err := s.Run(context.Background(), &g, testRequest(t))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(res.Data, generated) || res.ContentType != "image/png" {
		t.Errorf("result = %q %s", res.Data, res.ContentType)
	}
	if res.Filename != "furia-rock-ai-1700000000123.png" {
		t.Errorf("Filename = %q", res.Filename)
	}
	if g.Busy() {
		t.Error("guard still held after Run")
	}

	if api.key != "secret" {
		t.Errorf("api key header = %q", api.key)
	}
	if api.path != "/v1beta/models/gemini-2.5-flash-image:generateContent" {
		t.Errorf("path = %q", api.path)
	}
	parts := api.body.Contents[0].Parts
	if len(parts) != 3 {
		t.Fatalf("sent %d parts, want 3", len(parts))
	}
	if !strings.Contains(parts[0].Text, "facing the camera directly") {
		t.Error("first part is not the prompt")
	}
	if parts[1].InlineData.MimeType != "image/jpeg" || parts[2].InlineData.MimeType != "image/png" {
		t.Errorf("mime types = %s, %s", parts[1].InlineData.MimeType, parts[2].InlineData.MimeType)
	}
}

func TestRunFailures(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		response string
		header   http.Header
		code     errors.Code
		contains string
	}{
		{"text only", 200, `{"candidates":[{"content":{"parts":[{"text":"I cannot do that"}]}}]}`, nil, errors.ErrCodeExternalService, "I cannot do that"},
		{"no candidates", 200, `{"candidates":[],"promptFeedback":{"blockReason":"SAFETY"}}`, nil, errors.ErrCodeExternalService, "SAFETY"},
		{"bad json", 200, `{`, nil, errors.ErrCodeExternalService, "decode"},
		{"rate limited", 429, `{"error":{"code":429,"message":"quota"}}`, http.Header{"Retry-After": {"30"}}, errors.ErrCodeRateLimited, "quota"},
		{"bad key", 403, `{"error":{"code":403,"message":"API key not valid"}}`, nil, errors.ErrCodeUnauthorized, "API key not valid"},
		{"server error", 500, ``, nil, errors.ErrCodeExternalService, "500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{status: tt.status, response: tt.response, header: tt.header}
			s := newService(t, api)
			var g Guard
			res, err := s.Run(context.Background(), &g, testRequest(t))
			if !errors.Is(err, tt.code) {
				t.Fatalf("err = %v, want %s", err, tt.code)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("err = %v, want it to mention %q", err, tt.contains)
			}
			if res != nil {
				t.Error("failed run returned a result")
			}
			if g.Busy() {
				t.Error("failure left the guard held")
			}
			if api.calls != 1 {
				t.Errorf("calls = %d, want 1 (no retry)", api.calls)
			}
		})
	}
}

func TestRunRateLimitRetryAfter(t *testing.T) {
	api := &fakeAPI{status: 429, response: `{}`, header: http.Header{"Retry-After": {"12"}}}
	s := newService(t, api)
	_, err := s.Run(context.Background(), &Guard{}, testRequest(t))

	var rl *errors.RateLimitedError
	if !stderrors.As(err, &rl) || rl.RetryAfter != 12 {
		t.Errorf("err = %v, want RateLimitedError with RetryAfter 12", err)
	}
}

func TestRunBusy(t *testing.T) {
	api := &fakeAPI{response: imageResponse([]byte("x")), block: make(chan struct{})}
	s := newService(t, api)
	var g Guard
	req := testRequest(t)

	done := make(chan error, 1)
	go func() {
		_, err := s.Run(context.Background(), &g, req)
		done <- err
	}()

	deadline := time.Now().Add(5 * time.Second)
	for !g.Busy() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if _, err := s.Run(context.Background(), &g, req); !errors.Is(err, errors.ErrCodeBusy) {
		t.Errorf("concurrent run: err = %v, want TRYON_BUSY", err)
	}

	close(api.block)
	if err := <-done; err != nil {
		t.Errorf("first run: %v", err)
	}
}

func TestRunRejectsBadPhoto(t *testing.T) {
	api := &fakeAPI{response: imageResponse([]byte("x"))}
	s := newService(t, api)
	req := testRequest(t)
	req.Photo = []byte("GIF89a not allowed")

	if _, err := s.Run(context.Background(), &Guard{}, req); !errors.Is(err, errors.ErrCodeUnsupportedMedia) {
		t.Errorf("err = %v, want UNSUPPORTED_MEDIA", err)
	}
	if api.calls != 0 {
		t.Error("service called with an invalid photo")
	}
}

func TestGenerateWithoutKey(t *testing.T) {
	_, _, err := NewClient("").Generate(context.Background(), nil)
	if !errors.Is(err, errors.ErrCodeUnauthorized) {
		t.Errorf("err = %v, want UNAUTHORIZED", err)
	}
}
