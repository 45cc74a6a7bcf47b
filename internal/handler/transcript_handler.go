package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-portal-api/internal/service"
	appErrors "github.com/noah-isme/uni-portal-api/pkg/errors"
	"github.com/noah-isme/uni-portal-api/pkg/response"
)

// TranscriptHandler exposes transcript assembly and export endpoints.
type TranscriptHandler struct {
	transcripts *service.TranscriptService
	metrics     *service.MetricsService
}

// NewTranscriptHandler constructs a transcript handler.
func NewTranscriptHandler(transcripts *service.TranscriptService, metrics *service.MetricsService) *TranscriptHandler {
	return &TranscriptHandler{transcripts: transcripts, metrics: metrics}
}

// Get godoc
// @Summary Assembled transcript, optionally exported as csv, pdf or text
// @Tags Transcript
// @Produce json
// @Param id path string true "Student ID"
// @Param format query string false "Export format" Enums(csv, pdf, text)
// @Success 200 {object} response.Envelope
// @Router /students/{id}/transcript [get]
func (h *TranscriptHandler) Get(c *gin.Context) {
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}
	transcript, err := h.transcripts.Assemble(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	switch format := c.Query("format"); format {
	case "":
		response.JSON(c, http.StatusOK, transcript, nil)
	case "csv":
		payload, err := h.transcripts.RenderCSV(transcript)
		if err != nil {
			response.Error(c, err)
			return
		}
		h.metrics.RecordTranscriptExport("csv")
		response.Blob(c, "text/csv", exportFilename(studentID, "csv"), payload)
	case "pdf":
		payload, err := h.transcripts.RenderPDF(transcript)
		if err != nil {
			response.Error(c, err)
			return
		}
		h.metrics.RecordTranscriptExport("pdf")
		response.Blob(c, "application/pdf", exportFilename(studentID, "pdf"), payload)
	case "text":
		h.metrics.RecordTranscriptExport("text")
		response.Blob(c, "text/plain", exportFilename(studentID, "txt"), h.transcripts.RenderText(transcript))
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported format %q", format)))
	}
}

func exportFilename(studentID, ext string) string {
	return fmt.Sprintf("transcript-%s.%s", studentID, ext)
}
