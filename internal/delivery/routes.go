package delivery

import (
	"net/http"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(
	r chi.Router,
	hAnalysis *AnalysisHandler,
	hSpeech *SpeechHandler,
) {
	r.Route("/", func(pr chi.Router) {
		pr.Use(httputil.RecoverMiddleware)

		pr.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{
				"message": "ClarityAI Text Analysis Backend",
			})
		})

		// --- analysis ---
		pr.Post("/analyze", hAnalysis.Analyze)

		// --- voice gateway ---
		pr.Post("/transcribe", hSpeech.Transcribe)
		pr.Post("/clone-voice", hSpeech.CloneVoice)
		pr.Post("/generate-audio", hSpeech.GenerateAudio)
	})
}
