package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"unihop/internal/domain"
	"unihop/internal/repository"
	"unihop/internal/service"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	orderService *service.OrderService
	orderRepo    repository.OrderRepository
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService *service.OrderService, orderRepo repository.OrderRepository) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		orderRepo:    orderRepo,
	}
}

// OrderResponse is the HTTP representation of an order.
type OrderResponse struct {
	JobID             string  `json:"job_id"`
	Email             string  `json:"email"`
	Status            string  `json:"status"`
	Distance          float64 `json:"distance"`
	Price             string  `json:"price"`
	Tip               float64 `json:"tip"`
	DeliveryDate      string  `json:"delivery_date,omitempty"`
	DeliveryStartTime string  `json:"delivery_start_time,omitempty"`
	DeliveryEndTime   string  `json:"delivery_end_time,omitempty"`
	Asap              bool    `json:"asap"`
	PickupAddress     string  `json:"pickup_address"`
	PickupName        string  `json:"pickup_name"`
	DropoffAddress    string  `json:"dropoff_address"`
	DropoffName       string  `json:"dropoff_name"`
	DeliveryStyle     string  `json:"delivery_style"`
	BillingProcessed  bool    `json:"billing_processed"`
	DropoffWindowEnd  string  `json:"dropoff_window_end,omitempty"`
}

// ListOrdersResponse is the paginated listing envelope.
type ListOrdersResponse struct {
	Data    []OrderResponse `json:"data"`
	Page    int             `json:"page"`
	PerPage int             `json:"per_page"`
	Total   int             `json:"total"`
}

// List handles GET /orders
func (h *OrderHandler) List(c *gin.Context) {
	filter, err := parseListQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	orders, total, err := h.orderRepo.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	data := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		data = append(data, toOrderResponse(order))
	}

	respondJSON(c, http.StatusOK, ListOrdersResponse{
		Data:    data,
		Page:    filter.Page,
		PerPage: filter.PerPage,
		Total:   total,
	})
}

// UpdateOrderRequest is the HTTP request body for patching an order.
type UpdateOrderRequest struct {
	Email             *string  `json:"email"`
	Status            *string  `json:"status"`
	Distance          *float64 `json:"distance"`
	Price             *string  `json:"price"`
	Tip               *float64 `json:"tip"`
	DeliveryDate      *string  `json:"delivery_date"`
	DeliveryStartTime *string  `json:"delivery_start_time"`
	DeliveryEndTime   *string  `json:"delivery_end_time"`
	Asap              *bool    `json:"asap"`
	PickupAddress     *string  `json:"pickup_address"`
	PickupName        *string  `json:"pickup_name"`
	DropoffAddress    *string  `json:"dropoff_address"`
	DropoffName       *string  `json:"dropoff_name"`
	DeliveryStyle     *string  `json:"delivery_style"`
	BillingProcessed  *bool    `json:"billing_processed"`
}

// Update handles PATCH /order/:job_id
func (h *OrderHandler) Update(c *gin.Context) {
	jobID := c.Param("job_id")

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	order, err := h.orderService.UpdateOrder(c.Request.Context(), jobID, service.UpdateOrderInput{
		Email:             req.Email,
		Status:            req.Status,
		Distance:          req.Distance,
		Price:             req.Price,
		Tip:               req.Tip,
		DeliveryDate:      req.DeliveryDate,
		DeliveryStartTime: req.DeliveryStartTime,
		DeliveryEndTime:   req.DeliveryEndTime,
		Asap:              req.Asap,
		PickupAddress:     req.PickupAddress,
		PickupName:        req.PickupName,
		DropoffAddress:    req.DropoffAddress,
		DropoffName:       req.DropoffName,
		DeliveryStyle:     req.DeliveryStyle,
		BillingProcessed:  req.BillingProcessed,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toOrderResponse(order))
}

func parseListQuery(c *gin.Context) (repository.OrderFilter, error) {
	filter := repository.OrderFilter{
		Time:    repository.TimeFilterAll,
		Page:    1,
		PerPage: 10,
	}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return filter, service.ErrInvalidPagination
		}
		filter.Page = page
	}

	if raw := c.Query("per_page"); raw != "" {
		perPage, err := strconv.Atoi(raw)
		if err != nil || perPage < 1 || perPage > 100 {
			return filter, service.ErrInvalidPagination
		}
		filter.PerPage = perPage
	}

	if raw := c.Query("time"); raw != "" {
		switch repository.TimeFilter(raw) {
		case repository.TimeFilterAll, repository.TimeFilterToday,
			repository.TimeFilterPast, repository.TimeFilterFuture:
			filter.Time = repository.TimeFilter(raw)
		default:
			return filter, service.ErrInvalidTimeFilter
		}
	}

	if raw := c.Query("status"); raw != "" {
		for _, value := range strings.Split(raw, ",") {
			status := domain.Status(strings.TrimSpace(value))
			if !status.IsValid() {
				return filter, service.ErrInvalidStatus
			}
			filter.Statuses = append(filter.Statuses, status)
		}
	}

	filter.Email = c.Query("email")

	return filter, nil
}

func toOrderResponse(order *domain.Order) OrderResponse {
	resp := OrderResponse{
		JobID:             order.JobID,
		Email:             order.Email,
		Status:            string(order.Status),
		Distance:          order.Distance,
		Price:             order.Price,
		Tip:               order.Tip,
		DeliveryStartTime: order.DeliveryStartTime,
		DeliveryEndTime:   order.DeliveryEndTime,
		Asap:              order.Asap,
		PickupAddress:     order.PickupAddress,
		PickupName:        order.PickupName,
		DropoffAddress:    order.DropoffAddress,
		DropoffName:       order.DropoffName,
		DeliveryStyle:     string(order.DeliveryStyle),
		BillingProcessed:  order.BillingProcessed,
		DropoffWindowEnd:  dropoffWindowEnd(order),
	}

	if !order.DeliveryDate.IsZero() {
		resp.DeliveryDate = order.DeliveryDate.Format("2006-01-02")
	}

	return resp
}

// dropoffWindowEnd estimates when the dropoff window closes, from the
// delivery style and distance. ASAP orders have no window.
func dropoffWindowEnd(order *domain.Order) string {
	if order.Asap || order.DeliveryDate.IsZero() {
		return ""
	}

	var minutes int
	switch strings.ToLower(string(order.DeliveryStyle)) {
	case "special handling", "oversize":
		if order.Distance <= 20 {
			minutes = 20
		} else {
			minutes = 30
		}
	case "hybrid":
		switch {
		case order.Distance <= 15:
			minutes = 20
		case order.Distance <= 20:
			minutes = 40
		default:
			minutes = 60
		}
	case "custom", "standard lcf":
		if order.Distance <= 5 {
			minutes = 20
		} else {
			minutes = 60
		}
	default:
		if order.Distance <= 15 {
			minutes = 20
		} else {
			minutes = 60
		}
	}

	end := order.DeliveryDate.Add(time.Duration(minutes) * time.Minute)
	return end.Format("3:04 PM")
}
