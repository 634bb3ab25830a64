package handler

import (
	"net/http"

	"j5pharmacy/internal/apierror"
	"j5pharmacy/internal/dto"
	"j5pharmacy/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PrescriptionsHandler struct{ svc service.PrescriptionService }

func NewPrescriptionsHandler(svc service.PrescriptionService) *PrescriptionsHandler {
	return &PrescriptionsHandler{svc: svc}
}

func (h *PrescriptionsHandler) Create(c *gin.Context) {
	var req dto.CreatePrescriptionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PrescriptionsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetImage streams the scanned prescription as raw bytes.
func (h *PrescriptionsHandler) GetImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	img, err := h.svc.GetImage(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/octet-stream", img)
}

func (h *PrescriptionsHandler) ListByCustomer(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("customerId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid customer ID"))
		return
	}
	resp, err := h.svc.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
