package handlers

import (
	"net/http"

	"chainwork_backend/internal/middleware"
	"chainwork_backend/internal/services"
	"chainwork_backend/internal/services/dto"
	"chainwork_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	BaseHandler
	paymentService services.PaymentService
}

func NewPaymentHandler(base BaseHandler, paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{BaseHandler: base, paymentService: paymentService}
}

func (h *PaymentHandler) RegisterRoutes(private *gin.RouterGroup) {
	private.POST("/payments", h.Record)
	private.GET("/payments", h.List)
	private.GET("/payments/wallet", h.Wallet)
	private.GET("/payments/:paymentId", h.Get)
}

func (h *PaymentHandler) Record(c *gin.Context) {
	var req dto.RecordPaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	payment, err := h.paymentService.Record(middleware.CurrentUserID(c), req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

func (h *PaymentHandler) List(c *gin.Context) {
	page, limit := pageParams(c)
	payments, pagination, err := h.paymentService.List(middleware.CurrentUserID(c), page, limit)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	respondList(c, payments, pagination)
}

func (h *PaymentHandler) Get(c *gin.Context) {
	paymentID, ok := h.uuidParam(c, "paymentId")
	if !ok {
		return
	}

	payment, err := h.paymentService.Get(middleware.CurrentUserID(c), paymentID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

// Wallet surfaces the platform payment destination so clients know where
// to send funds before recording a transaction.
func (h *PaymentHandler) Wallet(c *gin.Context) {
	c.JSON(http.StatusOK, h.paymentService.Wallet())
}
