package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/printshop/backend/internal/application/finance"
	"github.com/printshop/backend/internal/interfaces/http/dto"
)

// ExpenseHandler handles expense API endpoints
type ExpenseHandler struct {
	BaseHandler
	service *finance.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(service *finance.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{service: service}
}

// List returns the filtered, paginated expense collection
func (h *ExpenseHandler) List(c *gin.Context) {
	var filter finance.ExpenseListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	normalizePagination(&filter.Page, &filter.PageSize)

	records, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, records, total, filter.Page, filter.PageSize)
}

// Get returns a single expense
func (h *ExpenseHandler) Get(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	record, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

// Create registers a new expense
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req finance.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	record, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, record)
}

// Update overwrites an expense
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req finance.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	record, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

// Delete removes an expense
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *ExpenseHandler) bindID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid id parameter")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid id parameter")
		return uuid.Nil, false
	}
	return id, true
}
