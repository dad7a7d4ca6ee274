package analysis

import "fmt"

// SpeechAnalysisResult is the shape /analyze always returns. It is built
// fresh per request and never stored.
type SpeechAnalysisResult struct {
	Category          string            `json:"category"`
	Demographics      []string          `json:"demographics"`
	AlternateSpeeches []AlternateSpeech `json:"alternateSpeeches"`
}

type AlternateSpeech struct {
	Demographic string `json:"demographic"`
	Speech      string `json:"speech"`
}

// FallbackResult is returned on every provider failure, whatever the
// cause. Callers cannot tell failure modes apart from the body; the
// distinguishing reason goes to the logs.
func FallbackResult() SpeechAnalysisResult {
	return SpeechAnalysisResult{
		Category:     "General",
		Demographics: []string{"Progressive", "Conservative", "Moderate"},
		AlternateSpeeches: []AlternateSpeech{
			{
				Demographic: "Progressive",
				Speech:      "We need bold action and systemic change to address this issue effectively.",
			},
			{
				Demographic: "Conservative",
				Speech:      "We should preserve our values while making careful, measured improvements.",
			},
			{
				Demographic: "Moderate",
				Speech:      "A balanced approach considering all perspectives will yield the best results.",
			},
		},
	}
}

// validate checks a provider-supplied result against the contract:
// non-empty category, exactly 3 distinct demographics, exactly 3
// alternate speeches with non-empty fields.
func (r SpeechAnalysisResult) validate() error {
	if r.Category == "" {
		return fmt.Errorf("empty category")
	}
	if len(r.Demographics) != 3 {
		return fmt.Errorf("expected 3 demographics, got %d", len(r.Demographics))
	}
	seen := make(map[string]bool, 3)
	for _, d := range r.Demographics {
		if d == "" {
			return fmt.Errorf("empty demographic name")
		}
		if seen[d] {
			return fmt.Errorf("duplicate demographic %q", d)
		}
		seen[d] = true
	}
	if len(r.AlternateSpeeches) != 3 {
		return fmt.Errorf("expected 3 alternate speeches, got %d", len(r.AlternateSpeeches))
	}
	for i, alt := range r.AlternateSpeeches {
		if alt.Demographic == "" || alt.Speech == "" {
			return fmt.Errorf("alternate speech %d has empty fields", i)
		}
	}
	return nil
}
