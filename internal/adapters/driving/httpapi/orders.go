package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sssmarthaat/haat/internal/core/domain"
)

type orderRequest struct {
	ProductID     string `json:"productId" binding:"required"`
	CustomerName  string `json:"customerName"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	SelectedSize  string `json:"selectedSize"`
	Quantity      int    `json:"quantity"`
	ChatSessionID string `json:"chatSessionId"`
}

type orderResponse struct {
	Order *domain.Order `json:"order"`

	// Warning is set when the order was saved but stock was not updated.
	Warning string `json:"warning,omitempty"`
}

func (s *Server) placeOrder(c *gin.Context) {
	if s.ports.Checkout == nil {
		unavailable(c, "checkout")
		return
	}
	var input orderRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithError(c, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err))
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}

	order, err := s.ports.Checkout.PlaceOrder(c.Request.Context(), input.ProductID, domain.OrderDraft{
		CustomerName:  input.CustomerName,
		Phone:         input.Phone,
		Address:       input.Address,
		SelectedSize:  input.SelectedSize,
		Quantity:      input.Quantity,
		ChatSessionID: input.ChatSessionID,
	})
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, orderResponse{Order: order})
	case errors.Is(err, domain.ErrStockNotUpdated) && order != nil:
		c.JSON(http.StatusCreated, orderResponse{Order: order, Warning: err.Error()})
	default:
		abortWithError(c, err)
	}
}

func (s *Server) listOrders(c *gin.Context) {
	if s.ports.Orders == nil {
		unavailable(c, "orders")
		return
	}
	orders, err := s.ports.Orders.List(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": orders})
}

func (s *Server) getOrder(c *gin.Context) {
	if s.ports.Orders == nil {
		unavailable(c, "orders")
		return
	}
	o, err := s.ports.Orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// confirmRequest accepts the charge as a JSON number or numeric string.
type confirmRequest struct {
	DeliveryCharge json.Number `json:"deliveryCharge"`
}

func (s *Server) confirmOrder(c *gin.Context) {
	if s.ports.Orders == nil {
		unavailable(c, "orders")
		return
	}
	var input confirmRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithError(c, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err))
		return
	}
	o, err := s.ports.Orders.Confirm(c.Request.Context(), c.Param("id"), input.DeliveryCharge.String())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (s *Server) cancelOrder(c *gin.Context) {
	if s.ports.Orders == nil {
		unavailable(c, "orders")
		return
	}
	o, err := s.ports.Orders.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (s *Server) deliverOrder(c *gin.Context) {
	if s.ports.Orders == nil {
		unavailable(c, "orders")
		return
	}
	o, err := s.ports.Orders.MarkDelivered(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (s *Server) deleteOrder(c *gin.Context) {
	if s.ports.Orders == nil {
		unavailable(c, "orders")
		return
	}
	if err := s.ports.Orders.Delete(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// downloadInvoice renders into a buffer so failures still map to a status code.
func (s *Server) downloadInvoice(c *gin.Context) {
	if s.ports.Invoices == nil {
		unavailable(c, "invoices")
		return
	}
	var buf bytes.Buffer
	inv, err := s.ports.Invoices.Write(c.Request.Context(), c.Param("id"), &buf)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", inv.FileName))
	c.Data(http.StatusOK, s.ports.Invoices.ContentType(), buf.Bytes())
}
