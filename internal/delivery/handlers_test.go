package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/clarityai/analysis-backend/internal/analysis"
	"github.com/clarityai/analysis-backend/internal/speech"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type stubAnalysis struct {
	calls  int
	result analysis.SpeechAnalysisResult
}

func (s *stubAnalysis) Analyze(_ context.Context, _ string) analysis.SpeechAnalysisResult {
	s.calls++
	return s.result
}

type stubSpeech struct {
	transcript string
	voiceID    string
	audio      []byte
	err        error
}

func (s *stubSpeech) Transcribe(_ context.Context, audio io.Reader, _ string) (string, error) {
	_, _ = io.Copy(io.Discard, audio)
	return s.transcript, s.err
}

func (s *stubSpeech) CloneVoice(_ context.Context, _ string, sample io.Reader, _ string) (string, error) {
	_, _ = io.Copy(io.Discard, sample)
	return s.voiceID, s.err
}

func (s *stubSpeech) GenerateAudio(_ context.Context, _, _ string, _ bool) ([]byte, error) {
	return s.audio, s.err
}

func newTestServer(a *stubAnalysis, sp *stubSpeech) *httptest.Server {
	zl := logger.NewZapLogger(zap.NewNop().Sugar())

	r := chi.NewRouter()
	RegisterRoutes(r, NewAnalysisHandler(a, zl), NewSpeechHandler(sp, zl))

	return httptest.NewServer(r)
}

func decodeDetail(t *testing.T, body io.Reader) string {
	t.Helper()
	var e struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(body).Decode(&e); err != nil {
		t.Fatalf("error body is not {\"detail\": ...}: %v", err)
	}
	return e.Detail
}

func TestRootMessage(t *testing.T) {
	srv := newTestServer(&stubAnalysis{}, &stubSpeech{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["message"] != "ClarityAI Text Analysis Backend" {
		t.Errorf("got %q", body["message"])
	}
}

func TestAnalyzeWhitespaceTextRejected(t *testing.T) {
	a := &stubAnalysis{result: analysis.FallbackResult()}
	srv := newTestServer(a, &stubSpeech{})
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/analyze", "application/json", strings.NewReader(`{"text": "   "}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
	if d := decodeDetail(t, resp.Body); d == "" {
		t.Error("expected non-empty detail")
	}
	if a.calls != 0 {
		t.Errorf("analysis must not run for empty text, got %d calls", a.calls)
	}
}

func TestAnalyzeInvalidJSONRejected(t *testing.T) {
	a := &stubAnalysis{}
	srv := newTestServer(a, &stubSpeech{})
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/analyze", "application/json", strings.NewReader("not json"))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
	if a.calls != 0 {
		t.Errorf("analysis must not run, got %d calls", a.calls)
	}
}

func TestAnalyzeReturnsServiceResult(t *testing.T) {
	want := analysis.SpeechAnalysisResult{
		Category:     "Politics",
		Demographics: []string{"A", "B", "C"},
		AlternateSpeeches: []analysis.AlternateSpeech{
			{Demographic: "A", Speech: "x"},
			{Demographic: "B", Speech: "y"},
			{Demographic: "C", Speech: "z"},
		},
	}
	srv := newTestServer(&stubAnalysis{result: want}, &stubSpeech{})
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/analyze", "application/json", strings.NewReader(`{"text": "my speech"}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("content type %q", ct)
	}

	var got analysis.SpeechAnalysisResult
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func multipartAudio(t *testing.T, field, filename string, extra map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = fw.Write([]byte("fake-audio"))
	for k, v := range extra {
		_ = mw.WriteField(k, v)
	}
	_ = mw.Close()
	return body, mw.FormDataContentType()
}

func TestTranscribe(t *testing.T) {
	srv := newTestServer(&stubAnalysis{}, &stubSpeech{transcript: "hello world"})
	defer srv.Close()

	body, ct := multipartAudio(t, "file", "clip.mp3", nil)

	resp, err := http.Post(srv.URL+"/transcribe", ct, body)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var got map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got["text"] != "hello world" {
		t.Errorf("got %q", got["text"])
	}
}

func TestTranscribeMissingFile(t *testing.T) {
	srv := newTestServer(&stubAnalysis{}, &stubSpeech{})
	defer srv.Close()

	body, ct := multipartAudio(t, "wrong_field", "clip.mp3", nil)

	resp, err := http.Post(srv.URL+"/transcribe", ct, body)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestTranscribeUnavailable(t *testing.T) {
	srv := newTestServer(&stubAnalysis{}, &stubSpeech{err: speech.ErrSTTUnavailable})
	defer srv.Close()

	body, ct := multipartAudio(t, "file", "clip.mp3", nil)

	resp, err := http.Post(srv.URL+"/transcribe", ct, body)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", resp.StatusCode)
	}
	if d := decodeDetail(t, resp.Body); d == "" {
		t.Error("expected non-empty detail")
	}
}

func TestCloneVoice(t *testing.T) {
	srv := newTestServer(&stubAnalysis{}, &stubSpeech{voiceID: "cloned-1"})
	defer srv.Close()

	body, ct := multipartAudio(t, "file", "sample.mp3", map[string]string{"session_id": "alice"})

	resp, err := http.Post(srv.URL+"/clone-voice", ct, body)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var got map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got["voice_id"] != "cloned-1" || got["message"] == "" {
		t.Errorf("got %+v", got)
	}
}

func TestGenerateAudio(t *testing.T) {
	srv := newTestServer(&stubAnalysis{}, &stubSpeech{audio: []byte("mp3-bytes")})
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/generate-audio", "application/json",
		strings.NewReader(`{"text": "say this", "use_cloned_voice": true, "session_id": "alice"}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "audio/mpeg" {
		t.Errorf("content type %q", ct)
	}

	data, _ := io.ReadAll(resp.Body)
	if !bytes.Equal(data, []byte("mp3-bytes")) {
		t.Errorf("got %q", data)
	}
}

func TestGenerateAudioEmptyText(t *testing.T) {
	srv := newTestServer(&stubAnalysis{}, &stubSpeech{audio: []byte("x")})
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/generate-audio", "application/json", strings.NewReader(`{"text": ""}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestGenerateAudioProviderFailure(t *testing.T) {
	srv := newTestServer(&stubAnalysis{}, &stubSpeech{err: io.ErrUnexpectedEOF})
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/generate-audio", "application/json", strings.NewReader(`{"text": "hi"}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", resp.StatusCode)
	}
}
