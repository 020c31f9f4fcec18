package handlers

import (
	"net/http"

	"github.com/FiyinfoluwaDav/Datathon-2025/internal/triage"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// TriageHandler passes patient assessments through to the external triage
// collaborator. Registered only when a triage URL is configured.
type TriageHandler struct {
	client *triage.Client
}

func NewTriageHandler(client *triage.Client) *TriageHandler {
	return &TriageHandler{client: client}
}

func (h *TriageHandler) Assess(c *gin.Context) {
	assessment, err := h.client.Assess(c.Request.Context(), c.Param("patient_id"))
	if err != nil {
		log.Error().Err(err).Str("patient_id", c.Param("patient_id")).Msg("triage call failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "triage service unavailable"})
		return
	}

	c.JSON(http.StatusOK, assessment)
}
