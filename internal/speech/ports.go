package speech

import (
	"context"
	"io"
)

type STTClient interface {
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)
}

type TTSClient interface {
	Synthesize(ctx context.Context, voiceID, text string) ([]byte, error)
}

type VoiceCloner interface {
	CloneVoice(ctx context.Context, name string, sample io.Reader, filename string) (string, error)
}
