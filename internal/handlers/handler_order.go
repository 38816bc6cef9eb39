package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/lcodev/ecom_backend/internal/core/ports/services"
	"github.com/lcodev/ecom_backend/internal/dto"
	"github.com/lcodev/ecom_backend/internal/middleware"
)

type orderHandler struct {
	orderService portssvc.OrderSvcFacade
	sessions     portssvc.SessionCheckerSvc
}

func newOrderHandler(os portssvc.OrderSvcFacade, sessions portssvc.SessionCheckerSvc) *orderHandler {
	return &orderHandler{orderService: os, sessions: sessions}
}

// registerOrderRoutes registers checkout and order listing routes. The add
// route takes every method so the service can reject non-POST requests.
func registerOrderRoutes(rg *gin.RouterGroup, orderService portssvc.OrderSvcFacade, sessions portssvc.SessionCheckerSvc, staffAuth gin.HandlerFunc) {
	h := newOrderHandler(orderService, sessions)

	rg.Any("/order/add/:id/:token", h.placeOrder)
	rg.GET("/order/mine/:id/:token", h.listMyOrders)
	rg.GET("/orders", staffAuth, h.listAllOrders)
}

// placeOrder godoc
// @Summary Place an order
// @Description Records a checkout for the session owner. Only POST is accepted.
// @Tags orders
// @Accept x-www-form-urlencoded
// @Produce json
// @Param id path string true "User ID"
// @Param token path string true "Session token"
// @Param transaction_id formData string true "Gateway transaction ID"
// @Param amount formData string true "Total amount"
// @Param products formData string true "Comma-terminated product names"
// @Success 200 {object} dto.PlaceOrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse "Please re-login (code 1)"
// @Failure 404 {object} dto.ErrorResponse "User does not exist"
// @Failure 405 {object} dto.ErrorResponse
// @Router /order/add/{id}/{token} [post]
func (h *orderHandler) placeOrder(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if c.Request.Method == http.MethodPost {
		if err := c.ShouldBind(&req); err != nil {
			respondSessionBindError(c, h.sessions, err)
			return
		}
	}
	req.Method = c.Request.Method
	req.UserID = c.Param("id")
	req.Token = c.Param("token")

	order, err := h.orderService.PlaceOrder(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to place order")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Order placed",
		slog.String("order_id", order.OrderID),
		slog.Int("total_products", order.TotalProducts))
	c.JSON(http.StatusOK, dto.PlaceOrderResponse{
		Success: true,
		Error:   false,
		Msg:     "Order placed Successfully",
		Order:   dto.ToOrderResponse(order),
	})
}

// listMyOrders godoc
// @Summary List my orders
// @Description Lists the session owner's orders, newest first.
// @Tags orders
// @Produce json
// @Param id path string true "User ID"
// @Param token path string true "Session token"
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListOrdersResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /order/mine/{id}/{token} [get]
func (h *orderHandler) listMyOrders(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	orders, err := h.orderService.ListMyOrders(c.Request.Context(), c.Param("id"), c.Param("token"), params.Limit, params.Offset)
	if err != nil {
		respondError(c, err, "Failed to list orders")
		return
	}
	c.JSON(http.StatusOK, dto.ToListOrdersResponse(orders))
}

// listAllOrders godoc
// @Summary List all orders
// @Description Lists every order, newest first. Staff only.
// @Tags orders
// @Produce json
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListOrdersResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security SessionUser
// @Security SessionToken
// @Router /orders [get]
func (h *orderHandler) listAllOrders(c *gin.Context) {
	requester, ok := requireRequester(c)
	if !ok {
		return
	}

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	orders, err := h.orderService.ListAllOrders(c.Request.Context(), requester, params.Limit, params.Offset)
	if err != nil {
		respondError(c, err, "Failed to list all orders")
		return
	}
	c.JSON(http.StatusOK, dto.ToListOrdersResponse(orders))
}
