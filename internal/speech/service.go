package speech

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/clarityai/analysis-backend/internal/ports"
	"github.com/google/uuid"
)

var (
	ErrSTTUnavailable = errors.New("speech-to-text is not configured")
	ErrTTSUnavailable = errors.New("text-to-speech is not configured")
)

// sessions without an explicit id share one slot, which keeps the old
// last-write-wins behavior for clients that never send session_id
const defaultSessionKey = "default"

type Service struct {
	stt            STTClient
	tts            TTSClient
	cloner         VoiceCloner
	s3             ports.S3Client // optional audio archive, may be nil
	log            *logger.ZapLogger
	defaultVoiceID string

	mu     sync.Mutex
	voices map[string]string // session id -> cloned voice id
}

func NewService(
	stt STTClient,
	tts TTSClient,
	cloner VoiceCloner,
	s3 ports.S3Client,
	log *logger.ZapLogger,
	defaultVoiceID string,
) *Service {
	return &Service{
		stt:            stt,
		tts:            tts,
		cloner:         cloner,
		s3:             s3,
		log:            log,
		defaultVoiceID: defaultVoiceID,
		voices:         make(map[string]string),
	}
}

func (s *Service) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	if s.stt == nil {
		return "", ErrSTTUnavailable
	}
	return s.stt.Transcribe(ctx, audio, filename)
}

// CloneVoice creates a provider voice from an audio sample and remembers
// its id for the session.
func (s *Service) CloneVoice(ctx context.Context, sessionID string, sample io.Reader, filename string) (string, error) {
	if s.cloner == nil {
		return "", ErrTTSUnavailable
	}

	name := "clarity-" + uuid.NewString()[:8]
	voiceID, err := s.cloner.CloneVoice(ctx, name, sample, filename)
	if err != nil {
		return "", err
	}

	if sessionID == "" {
		sessionID = defaultSessionKey
	}

	s.mu.Lock()
	s.voices[sessionID] = voiceID
	s.mu.Unlock()

	return voiceID, nil
}

// VoiceForSession returns the cloned voice id remembered for a session.
func (s *Service) VoiceForSession(sessionID string) (string, bool) {
	if sessionID == "" {
		sessionID = defaultSessionKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.voices[sessionID]
	return id, ok
}

// GenerateAudio synthesizes text with the session's cloned voice when
// requested (and present), falling back to the default voice otherwise.
func (s *Service) GenerateAudio(ctx context.Context, sessionID, text string, useClonedVoice bool) ([]byte, error) {
	if s.tts == nil {
		return nil, ErrTTSUnavailable
	}

	voiceID := s.defaultVoiceID
	if useClonedVoice {
		if id, ok := s.VoiceForSession(sessionID); ok {
			voiceID = id
		}
	}

	data, err := s.tts.Synthesize(ctx, voiceID, text)
	if err != nil {
		return nil, err
	}

	s.archive(data)

	return data, nil
}

// archive uploads a copy of generated audio to S3 when configured.
// Detached from the request: it never blocks or fails the response.
func (s *Service) archive(data []byte) {
	if s.s3 == nil {
		return
	}

	key := "generated/" + uuid.NewString() + ".mp3"

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if _, err := s.s3.PutObject(ctx, key, bytes.NewReader(data), int64(len(data)), "audio/mpeg"); err != nil {
			s.log.Log(logger.LogEntry{
				Level:   "warn",
				Message: "[speech] audio archive upload failed",
				Service: "speech",
				Error:   err,
			})
		}
	}()
}
