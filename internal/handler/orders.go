package handler

import (
	"net/http"

	"greenroots/internal/apierror"
	"greenroots/internal/dto"
	"greenroots/internal/middleware"
	"greenroots/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrdersHandler struct{ svc service.OrderService }

func NewOrdersHandler(svc service.OrderService) *OrdersHandler {
	return &OrdersHandler{svc: svc}
}

// authorizeOrder loads the order and enforces ownership: admins see every
// order, users only their own. Returns false after writing the response.
func (h *OrdersHandler) authorizeOrder(c *gin.Context, orderID uuid.UUID) (*dto.OrderResponse, bool) {
	order, err := h.svc.Get(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	claims := middleware.GetClaims(c)
	if claims.Role != middleware.RoleAdmin && claims.UserID != order.UserID {
		c.JSON(http.StatusForbidden, apierror.New("Insufficient permissions"))
		return nil, false
	}
	return order, true
}

func (h *OrdersHandler) List(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListByUser serves /users/:id/orders; the ownership middleware has already
// checked the path parameter against the token.
func (h *OrdersHandler) ListByUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ByUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	order, ok := h.authorizeOrder(c, id)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrdersHandler) GetFull(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if _, ok := h.authorizeOrder(c, id); !ok {
		return
	}
	resp, err := h.svc.GetFull(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) Items(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if _, ok := h.authorizeOrder(c, id); !ok {
		return
	}
	resp, err := h.svc.Items(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	if claims.Role != middleware.RoleAdmin && claims.UserID != req.UserID {
		c.JSON(http.StatusForbidden, apierror.New("Insufficient permissions"))
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OrdersHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if _, ok := h.authorizeOrder(c, id); !ok {
		return
	}
	var req dto.UpdateOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) AddItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if _, ok := h.authorizeOrder(c, id); !ok {
		return
	}
	var req dto.AddOrderItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddItem(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
