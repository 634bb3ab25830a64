package handler

import (
	"net/http"

	"j5pharmacy/internal/apierror"
	"j5pharmacy/internal/dto"
	"j5pharmacy/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TransactionsHandler serves the POS sale and star-points endpoints.
type TransactionsHandler struct {
	sales  service.SaleService
	points service.PointsService
}

func NewTransactionsHandler(sales service.SaleService, points service.PointsService) *TransactionsHandler {
	return &TransactionsHandler{sales: sales, points: points}
}

// Create settles a sale: invoice, stock decrement per line, loyalty earn —
// all in one transaction. Any failed line rolls the whole thing back.
func (h *TransactionsHandler) Create(c *gin.Context) {
	var req dto.CreateSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.sales.CreateSale(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *TransactionsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	resp, err := h.sales.GetSale(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TransactionsHandler) List(c *gin.Context) {
	var filter dto.SaleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.sales.ListSales(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TransactionsHandler) Void(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.VoidSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.sales.VoidSale(c.Request.Context(), id, req.Reason); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RedeemPoints deducts star points against a sale. Over-redemption fails the
// whole call with the literal "Insufficient points balance" message.
func (h *TransactionsHandler) RedeemPoints(c *gin.Context) {
	var req dto.RedeemPointsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.points.Redeem(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TransactionsHandler) GetPointsBalance(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("customer_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid customer ID"))
		return
	}
	resp, err := h.points.GetBalance(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
