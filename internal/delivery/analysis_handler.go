package delivery

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/Vovarama1992/go-utils/logger"
)

type AnalysisHandler struct {
	service AnalysisService
	log     *logger.ZapLogger
}

func NewAnalysisHandler(service AnalysisService, log *logger.ZapLogger) *AnalysisHandler {
	return &AnalysisHandler{
		service: service,
		log:     log,
	}
}

func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "Text cannot be empty")
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "[analyze] text received, len=" + strconv.Itoa(len(req.Text)),
		Service: "delivery",
	})

	result := h.service.Analyze(r.Context(), req.Text)

	writeJSON(w, http.StatusOK, result)
}
