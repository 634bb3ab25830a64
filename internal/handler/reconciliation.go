package handler

import (
	"net/http"

	"j5pharmacy/internal/apierror"
	"j5pharmacy/internal/dto"
	"j5pharmacy/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReconciliationHandler serves the end-of-shift cash reconciliation screens.
type ReconciliationHandler struct{ svc service.SessionService }

func NewReconciliationHandler(svc service.SessionService) *ReconciliationHandler {
	return &ReconciliationHandler{svc: svc}
}

// SessionSummary returns the system-computed totals for the reconciliation
// screen before the pharmacist declares their counted cash.
func (h *ReconciliationHandler) SessionSummary(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid session ID"))
		return
	}
	resp, err := h.svc.Summary(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Save closes the session and records the declared counts atomically.
func (h *ReconciliationHandler) Save(c *gin.Context) {
	var req dto.SaveReconciliationRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SaveReconciliation(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
