package delivery

import (
	"context"
	"io"

	"github.com/clarityai/analysis-backend/internal/analysis"
)

type AnalysisService interface {
	Analyze(ctx context.Context, text string) analysis.SpeechAnalysisResult
}

type SpeechService interface {
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)
	CloneVoice(ctx context.Context, sessionID string, sample io.Reader, filename string) (string, error)
	GenerateAudio(ctx context.Context, sessionID, text string, useClonedVoice bool) ([]byte, error)
}
