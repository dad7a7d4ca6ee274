package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/clarityai/analysis-backend/internal/config"
)

const promptTemplate = `Analyze this speech and provide a JSON response:

Speech: "%s"

Return JSON in this exact format:
{
    "category": "The main category (politics, economics, climate, etc.)",
    "demographics": ["3 different demographic perspectives"],
    "alternateSpeeches": [
        {
            "demographic": "First demographic",
            "speech": "Rewritten speech for this demographic, considering what they care about. Match original speech length."
        },
        {
            "demographic": "Second demographic",
            "speech": "Rewritten speech for this demographic, considering what they care about. Match original speech length."
        },
        {
            "demographic": "Third demographic",
            "speech": "Rewritten speech for this demographic, considering what they care about. Match original speech length."
        }
    ]
}

Only return the JSON, no other text.`

type Service struct {
	client  CompletionClient
	cfg     *config.Config
	log     *logger.ZapLogger
	timeout time.Duration
}

func NewService(client CompletionClient, cfg *config.Config, log *logger.ZapLogger) *Service {
	return &Service{
		client:  client,
		cfg:     cfg,
		log:     log,
		timeout: cfg.AnalysisTimeout,
	}
}

// Analyze rewrites a speech for three demographic audiences. It never
// returns an error: any failure on the provider path degrades to the
// fixed fallback result, and the failure reason goes to the logs only.
func (s *Service) Analyze(ctx context.Context, text string) SpeechAnalysisResult {
	if s.cfg.OpenRouterKey == "" {
		s.fallback("no_api_key", nil)
		return FallbackResult()
	}

	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	content, err := s.client.Complete(ctx, fmt.Sprintf(promptTemplate, text))
	if err != nil {
		s.fallback("provider_error", err)
		return FallbackResult()
	}

	var result SpeechAnalysisResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		s.fallback("bad_json", err)
		return FallbackResult()
	}

	if err := result.validate(); err != nil {
		s.fallback("invalid_shape", err)
		return FallbackResult()
	}

	s.log.Log(logger.LogEntry{
		Level:   "info",
		Message: fmt.Sprintf("[analysis] done in %.1fs category=%s", time.Since(start).Seconds(), result.Category),
		Service: "analysis",
	})

	return result
}

func (s *Service) fallback(reason string, err error) {
	s.log.Log(logger.LogEntry{
		Level:   "warn",
		Message: "[analysis] fallback reason=" + reason,
		Service: "analysis",
		Error:   err,
	})
}
