package delivery

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/clarityai/analysis-backend/internal/speech"
)

type SpeechHandler struct {
	service SpeechService
	log     *logger.ZapLogger
}

func NewSpeechHandler(service SpeechService, log *logger.ZapLogger) *SpeechHandler {
	return &SpeechHandler{
		service: service,
		log:     log,
	}
}

func (h *SpeechHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(20 << 20); err != nil {
		h.log.Log(logger.LogEntry{Level: "warn", Message: "invalid multipart", Error: err})
		writeError(w, http.StatusBadRequest, "invalid multipart: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file: "+err.Error())
		return
	}
	defer file.Close()

	text, err := h.service.Transcribe(r.Context(), file, header.Filename)
	if err != nil {
		h.speechError(w, "transcription failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}

func (h *SpeechHandler) CloneVoice(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(20 << 20); err != nil {
		h.log.Log(logger.LogEntry{Level: "warn", Message: "invalid multipart", Error: err})
		writeError(w, http.StatusBadRequest, "invalid multipart: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file: "+err.Error())
		return
	}
	defer file.Close()

	sessionID := r.FormValue("session_id")

	voiceID, err := h.service.CloneVoice(r.Context(), sessionID, file, header.Filename)
	if err != nil {
		h.speechError(w, "voice cloning failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"voice_id": voiceID,
		"message":  "Voice cloned successfully",
	})
}

func (h *SpeechHandler) GenerateAudio(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text           string `json:"text"`
		UseClonedVoice bool   `json:"use_cloned_voice"`
		SessionID      string `json:"session_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "Text cannot be empty")
		return
	}

	data, err := h.service.GenerateAudio(r.Context(), req.SessionID, req.Text, req.UseClonedVoice)
	if err != nil {
		h.speechError(w, "audio generation failed", err)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	_, _ = w.Write(data)
}

// speechError maps a voice-gateway failure to 503 when the provider is
// not configured and 502 when the provider call itself failed.
func (h *SpeechHandler) speechError(w http.ResponseWriter, msg string, err error) {
	h.log.Log(logger.LogEntry{Level: "error", Message: msg, Service: "delivery", Error: err})

	if errors.Is(err, speech.ErrSTTUnavailable) || errors.Is(err, speech.ErrTTSUnavailable) {
		writeError(w, http.StatusServiceUnavailable, msg+": "+err.Error())
		return
	}
	writeError(w, http.StatusBadGateway, msg+": "+err.Error())
}
