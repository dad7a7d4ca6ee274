package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/clarityai/analysis-backend/internal/config"
)

type ElevenLabsClient struct {
	apiKey  string
	baseURL string
	httpCli *http.Client
}

func NewElevenLabsClient(cfg *config.Config) *ElevenLabsClient {
	return &ElevenLabsClient{
		apiKey:  cfg.ElevenLabsKey,
		baseURL: cfg.ElevenLabsBaseURL,
		httpCli: &http.Client{Timeout: 60 * time.Second},
	}
}

// TEXT → SPEECH
func (c *ElevenLabsClient) Synthesize(ctx context.Context, voiceID, text string) ([]byte, error) {
	url := fmt.Sprintf("%s/text-to-speech/%s", c.baseURL, voiceID)

	payload := []byte(fmt.Sprintf(`{"text": %q}`, text))

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("tts failed: %s", string(b))
	}

	return io.ReadAll(resp.Body)
}

// AUDIO SAMPLE → CLONED VOICE
func (c *ElevenLabsClient) CloneVoice(ctx context.Context, name string, sample io.Reader, filename string) (string, error) {
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)

	if err := mw.WriteField("name", name); err != nil {
		return "", err
	}
	fw, err := mw.CreateFormFile("files", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(fw, sample); err != nil {
		return "", fmt.Errorf("read sample: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/voices/add", body)
	if err != nil {
		return "", err
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("voice clone failed: %s", string(b))
	}

	var parsed struct {
		VoiceID string `json:"voice_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode clone response: %w", err)
	}
	if parsed.VoiceID == "" {
		return "", fmt.Errorf("empty voice_id in clone response")
	}

	return parsed.VoiceID, nil
}
