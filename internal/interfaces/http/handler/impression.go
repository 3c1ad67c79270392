package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/printshop/backend/internal/application/listing"
	"github.com/printshop/backend/internal/application/printing"
	"github.com/printshop/backend/internal/interfaces/http/dto"
)

// ImpressionHandler handles print job API endpoints
type ImpressionHandler struct {
	BaseHandler
	service *printing.ImpressionService
}

// NewImpressionHandler creates a new ImpressionHandler
func NewImpressionHandler(service *printing.ImpressionService) *ImpressionHandler {
	return &ImpressionHandler{service: service}
}

// List returns the filtered, paginated impression collection
func (h *ImpressionHandler) List(c *gin.Context) {
	var filter printing.ImpressionListFilter
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

// Get returns a single impression with its line items
func (h *ImpressionHandler) Get(c *gin.Context) {
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

// Create registers a new impression
func (h *ImpressionHandler) Create(c *gin.Context) {
	var req printing.CreateImpressionRequest
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

// Update overwrites an impression and its line item set
func (h *ImpressionHandler) Update(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req printing.UpdateImpressionRequest
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

// Delete removes an impression with its line items
func (h *ImpressionHandler) Delete(c *gin.Context) {
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

func (h *ImpressionHandler) bindID(c *gin.Context) (uuid.UUID, bool) {
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

// normalizePagination applies the default page and clamps the page
// size to the supported values
func normalizePagination(page, pageSize *int) {
	if *page < 1 {
		*page = 1
	}
	valid := false
	for _, size := range listing.PageSizes {
		if *pageSize == size {
			valid = true
			break
		}
	}
	if !valid {
		*pageSize = listing.DefaultPageSize
	}
}
