package rest

import (
	"errors"
	"net/http"

	"github.com/Gunvolt24/merch_fulfillment/internal/domain"
	"github.com/Gunvolt24/merch_fulfillment/pkg/httpx"
	"github.com/Gunvolt24/merch_fulfillment/pkg/validate"
	"github.com/gin-gonic/gin"
)

// orderPage — пагинация списков заказов.
var orderPage = httpx.PageLimits{Default: 20, Max: 100}

func (h *Handler) checkout(c *gin.Context) {
	var req domain.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	ctx, cancel := h.withTimeout(c)
	defer cancel()

	res, err := h.deps.Checkout.StartCheckout(ctx, &req)
	if err != nil {
		if errors.Is(err, validate.ErrInvalidCheckout) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Errorf(ctx, "StartCheckout failed user_id=%s err=%v", req.UserID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "checkout unavailable"})
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) getOrderByID(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty id"})
		return
	}

	ctx, cancel := h.withTimeout(c)
	defer cancel()

	order, err := h.deps.Orders.GetOrder(ctx, id)
	if err != nil {
		h.log.Errorf(ctx, "GetOrder failed id=%s err=%v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) listOrdersByUser(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty user id"})
		return
	}
	page := httpx.ParsePage(c, orderPage)

	ctx, cancel := h.withTimeout(c)
	defer cancel()

	orders, err := h.deps.Orders.OrdersByUser(ctx, id, page.Limit, page.Offset)
	if err != nil {
		h.log.Errorf(ctx, "OrdersByUser failed id=%s err=%v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, emptyIfNil(orders))
}

// listOrdersByStatus — операционная выборка, например /orders?status=failed.
func (h *Handler) listOrdersByStatus(c *gin.Context) {
	status := domain.Status(c.Query("status"))
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}
	page := httpx.ParsePage(c, orderPage)

	ctx, cancel := h.withTimeout(c)
	defer cancel()

	orders, err := h.deps.Orders.OrdersByStatus(ctx, status, page.Limit)
	if err != nil {
		h.log.Errorf(ctx, "OrdersByStatus failed status=%s err=%v", status, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, emptyIfNil(orders))
}

func emptyIfNil(orders []*domain.Order) []*domain.Order {
	if orders == nil {
		return []*domain.Order{}
	}
	return orders
}
