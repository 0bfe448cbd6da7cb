package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zenithhr/procurement-workflow/internal/application/port"
	"github.com/zenithhr/procurement-workflow/internal/application/service"
	"github.com/zenithhr/procurement-workflow/internal/application/workflow"
	"github.com/zenithhr/procurement-workflow/internal/domain/entity"
	"github.com/zenithhr/procurement-workflow/internal/domain/policy"
	"github.com/zenithhr/procurement-workflow/internal/domain/stage"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	requestService service.RequestService
	engine         workflow.Engine
	logger         Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(requestService service.RequestService, engine workflow.Engine, logger Logger) *Handlers {
	return &Handlers{
		requestService: requestService,
		engine:         engine,
		logger:         logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// CreateRequestBody is the payload for POST /api/requests
type CreateRequestBody struct {
	AmountCents int64  `json:"amount_cents" binding:"required"`
	Department  string `json:"department" binding:"required"`
	RequesterID string `json:"requester_id" binding:"required"`
	VendorName  string `json:"vendor_name" binding:"required"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// TransitionBody is the payload for POST /api/requests/:id/transitions.
// Actor identity and roles are supplied by the upstream auth layer.
type TransitionBody struct {
	ActorID  string   `json:"actor_id" binding:"required"`
	Roles    []string `json:"roles" binding:"required"`
	Decision string   `json:"decision" binding:"required"`
	Comments string   `json:"comments"`
}

// ListRequestsQuery represents query parameters for listing requests
type ListRequestsQuery struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// CreateRequest handles POST /api/requests
func (h *Handlers) CreateRequest(c *gin.Context) {
	var body CreateRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	req, err := h.requestService.Create(c.Request.Context(), service.CreateRequestInput{
		AmountCents: body.AmountCents,
		Department:  body.Department,
		RequesterID: body.RequesterID,
		VendorName:  body.VendorName,
		Description: body.Description,
		Priority:    body.Priority,
	})
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
			return
		}
		h.logger.Error("Failed to create request", "error", err)
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to create request"})
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: req})
}

// SubmitTransition handles POST /api/requests/:id/transitions
func (h *Handlers) SubmitTransition(c *gin.Context) {
	id := c.Param("id")

	var body TransitionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	actor := entity.Actor{ID: body.ActorID, Roles: body.Roles}
	decision := stage.Decision(body.Decision)

	req, err := h.engine.Transition(c.Request.Context(), id, actor, decision, body.Comments)
	if err != nil {
		h.writeTransitionError(c, id, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: req})
}

// writeTransitionError maps engine failures to HTTP statuses. Version
// conflicts surface as 409 after the engine's bounded retries; the client is
// expected to refresh and resubmit.
func (h *Handlers) writeTransitionError(c *gin.Context, id string, err error) {
	var authErr *policy.AuthorizationError

	switch {
	case errors.Is(err, port.ErrNotFound):
		c.JSON(http.StatusNotFound, Response{Success: false, Error: "request not found"})
	case errors.Is(err, workflow.ErrAlreadyTerminal):
		c.JSON(http.StatusConflict, Response{Success: false, Error: "request is already closed"})
	case errors.Is(err, workflow.ErrInvalidDecision):
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "decision must be APPROVE or REJECT"})
	case errors.As(err, &authErr):
		c.JSON(http.StatusForbidden, Response{Success: false, Error: authErr.Error()})
	case errors.Is(err, port.ErrVersionConflict):
		c.JSON(http.StatusConflict, Response{Success: false, Error: "request was modified concurrently, please refresh"})
	case errors.Is(err, stage.ErrNoSuchTransition), errors.Is(err, stage.ErrUnknownStage):
		// Should not happen with a correctly configured registry
		h.logger.Error("Transition resolution failed", "request_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "internal workflow error"})
	default:
		h.logger.Error("Transition failed", "request_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "transition failed"})
	}
}

// GetRequest handles GET /api/requests/:id
func (h *Handlers) GetRequest(c *gin.Context) {
	req, err := h.requestService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			c.JSON(http.StatusNotFound, Response{Success: false, Error: "request not found"})
			return
		}
		h.logger.Error("Failed to get request", "id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to retrieve request"})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: req})
}

// GetHistory handles GET /api/requests/:id/history
func (h *Handlers) GetHistory(c *gin.Context) {
	history, err := h.requestService.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			c.JSON(http.StatusNotFound, Response{Success: false, Error: "request not found"})
			return
		}
		h.logger.Error("Failed to get history", "id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to retrieve history"})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: history})
}

// ListRequests handles GET /api/requests
func (h *Handlers) ListRequests(c *gin.Context) {
	var query ListRequestsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid query parameters"})
		return
	}

	if query.Limit <= 0 || query.Limit > 100 {
		query.Limit = 20
	}
	if query.Offset < 0 {
		query.Offset = 0
	}

	requests, err := h.requestService.List(c.Request.Context(), query.Limit, query.Offset)
	if err != nil {
		h.logger.Error("Failed to list requests", "error", err)
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to retrieve requests"})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: requests})
}

// GetBoard handles GET /api/board
func (h *Handlers) GetBoard(c *gin.Context) {
	board, err := h.requestService.Board(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to build board", "error", err)
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to build board"})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: gin.H{
			"columns": board,
		},
	})
}
