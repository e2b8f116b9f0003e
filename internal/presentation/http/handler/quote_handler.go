package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/proposalforge/agency-api/internal/application/service"
	"github.com/proposalforge/agency-api/internal/domain/enum"
	"github.com/proposalforge/agency-api/internal/presentation/http/dto/request"
	"github.com/proposalforge/agency-api/internal/presentation/http/dto/response"
	"github.com/proposalforge/agency-api/pkg/pagination"
)

// QuoteHandler handles stored quote HTTP requests
type QuoteHandler struct {
	quoteService *service.QuoteService
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(quoteService *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

// List handles listing quotes with pagination, status filter and search
func (h *QuoteHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	search := c.Query("search")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	var status *enum.QuoteStatus
	if s := c.Query("status"); s != "" {
		parsed, err := enum.ParseQuoteStatus(s)
		if err != nil {
			response.BadRequest(c, "Invalid status filter")
			return
		}
		status = &parsed
	}

	quotes, pag, err := h.quoteService.ListQuotes(c.Request.Context(), *userID, params, status, search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Quotes retrieved successfully", pagination.NewPaginatedResult(quotes, pag))
}

// Get handles retrieving a single quote
func (h *QuoteHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	quote, err := h.quoteService.GetQuote(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote retrieved successfully", quote)
}

// GetByNumber handles retrieving a single quote by its quote number
func (h *QuoteHandler) GetByNumber(c *gin.Context) {
	quote, err := h.quoteService.GetQuoteByNumber(c.Request.Context(), c.Param("quoteNumber"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote retrieved successfully", quote)
}

// UpdateStatus handles quote lifecycle transitions
func (h *QuoteHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	var req request.UpdateQuoteStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	status, err := enum.ParseQuoteStatus(req.Status)
	if err != nil {
		response.BadRequest(c, "Invalid status")
		return
	}

	quote, err := h.quoteService.UpdateQuoteStatus(c.Request.Context(), id, status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote status updated successfully", quote)
}

// Delete handles deleting a quote
func (h *QuoteHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	if err := h.quoteService.DeleteQuote(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote deleted successfully", nil)
}
