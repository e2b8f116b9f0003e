package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/proposalforge/agency-api/internal/application/catalog"
	"github.com/proposalforge/agency-api/internal/application/draft"
	"github.com/proposalforge/agency-api/internal/application/render"
	"github.com/proposalforge/agency-api/internal/application/service"
	"github.com/proposalforge/agency-api/internal/domain/entity"
	"github.com/proposalforge/agency-api/internal/domain/pricing"
	"github.com/proposalforge/agency-api/internal/domain/repository"
	"github.com/proposalforge/agency-api/internal/presentation/http/dto/request"
	"github.com/proposalforge/agency-api/internal/presentation/http/dto/response"
)

// DraftHandler exposes the quote wizard over HTTP: the single working
// draft, step navigation, collection mutations, template application,
// document preview and final submission.
type DraftHandler struct {
	session      *draft.Session
	catalog      *catalog.Catalog
	renderCfg    render.Config
	pdf          *render.PDFGenerator
	quoteService *service.QuoteService
	clientRepo   repository.ClientRepository
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(
	session *draft.Session,
	cat *catalog.Catalog,
	renderCfg render.Config,
	quoteService *service.QuoteService,
	clientRepo repository.ClientRepository,
) *DraftHandler {
	return &DraftHandler{
		session:      session,
		catalog:      cat,
		renderCfg:    renderCfg,
		pdf:          render.NewPDFGenerator(renderCfg),
		quoteService: quoteService,
		clientRepo:   clientRepo,
	}
}

type draftState struct {
	Draft     entity.QuoteData  `json:"draft"`
	Totals    pricing.Breakdown `json:"totals"`
	Step      int               `json:"step"`
	StepName  string            `json:"step_name"`
	Recovered bool              `json:"recovered"`
	LastSaved string            `json:"last_saved,omitempty"`
}

func (h *DraftHandler) state() draftState {
	data := h.session.Data()
	st := draftState{
		Draft:     data,
		Totals:    pricing.Calculate(data),
		Step:      h.session.Step(),
		StepName:  h.session.StepName(),
		Recovered: h.session.Recovered(),
	}
	if t := h.session.LastSavedAt(); !t.IsZero() {
		st.LastSaved = t.UTC().Format("2006-01-02T15:04:05Z07:00")
	}
	return st
}

// Get returns the current draft with derived totals and wizard position
func (h *DraftHandler) Get(c *gin.Context) {
	response.OK(c, "Draft retrieved successfully", h.state())
}

// Replace swaps in the full draft pushed by the client
func (h *DraftHandler) Replace(c *gin.Context) {
	var data entity.QuoteData
	if err := c.ShouldBindJSON(&data); err != nil {
		response.BadRequest(c, "Invalid draft payload")
		return
	}
	h.session.Replace(data)
	response.OK(c, "Draft updated successfully", h.state())
}

// Save flushes the draft to the recovery store immediately
func (h *DraftHandler) Save(c *gin.Context) {
	if err := h.session.Flush(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Draft saved successfully", h.state())
}

// Clear discards the draft and its recovery slot
func (h *DraftHandler) Clear(c *gin.Context) {
	if err := h.session.Clear(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Draft cleared successfully", h.state())
}

// Next advances the wizard one step
func (h *DraftHandler) Next(c *gin.Context) {
	h.session.Next()
	response.OK(c, "Step updated successfully", h.state())
}

// Prev moves the wizard back one step
func (h *DraftHandler) Prev(c *gin.Context) {
	h.session.Prev()
	response.OK(c, "Step updated successfully", h.state())
}

// GoTo jumps the wizard to a specific step
func (h *DraftHandler) GoTo(c *gin.Context) {
	var req request.GoToStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid step")
		return
	}
	h.session.GoTo(req.Step)
	response.OK(c, "Step updated successfully", h.state())
}

// AddItem appends a blank line item to the draft
func (h *DraftHandler) AddItem(c *gin.Context) {
	h.session.Apply(draft.AddItem)
	response.OK(c, "Item added successfully", h.state())
}

// UpdateItem patches one field of a line item
func (h *DraftHandler) UpdateItem(c *gin.Context) {
	id := c.Param("id")
	var req request.UpdateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	h.session.Apply(func(q entity.QuoteData) entity.QuoteData {
		return draft.UpdateItem(q, id, req.Field, req.Value)
	})
	response.OK(c, "Item updated successfully", h.state())
}

// RemoveItem deletes a line item
func (h *DraftHandler) RemoveItem(c *gin.Context) {
	id := c.Param("id")
	h.session.Apply(func(q entity.QuoteData) entity.QuoteData {
		return draft.RemoveItem(q, id)
	})
	response.OK(c, "Item removed successfully", h.state())
}

// AddMilestone appends a blank milestone to the draft
func (h *DraftHandler) AddMilestone(c *gin.Context) {
	h.session.Apply(draft.AddMilestone)
	response.OK(c, "Milestone added successfully", h.state())
}

// UpdateMilestone patches one field of a milestone
func (h *DraftHandler) UpdateMilestone(c *gin.Context) {
	id := c.Param("id")
	var req request.UpdateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	h.session.Apply(func(q entity.QuoteData) entity.QuoteData {
		return draft.UpdateMilestone(q, id, req.Field, req.Value)
	})
	response.OK(c, "Milestone updated successfully", h.state())
}

// RemoveMilestone deletes a milestone
func (h *DraftHandler) RemoveMilestone(c *gin.Context) {
	id := c.Param("id")
	h.session.Apply(func(q entity.QuoteData) entity.QuoteData {
		return draft.RemoveMilestone(q, id)
	})
	response.OK(c, "Milestone removed successfully", h.state())
}

// AddPaymentTerm appends a blank payment term to the draft
func (h *DraftHandler) AddPaymentTerm(c *gin.Context) {
	h.session.Apply(draft.AddPaymentTerm)
	response.OK(c, "Payment term added successfully", h.state())
}

// UpdatePaymentTerm patches one field of a payment term
func (h *DraftHandler) UpdatePaymentTerm(c *gin.Context) {
	id := c.Param("id")
	var req request.UpdateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	h.session.Apply(func(q entity.QuoteData) entity.QuoteData {
		return draft.UpdatePaymentTerm(q, id, req.Field, req.Value)
	})
	response.OK(c, "Payment term updated successfully", h.state())
}

// RemovePaymentTerm deletes a payment term
func (h *DraftHandler) RemovePaymentTerm(c *gin.Context) {
	id := c.Param("id")
	h.session.Apply(func(q entity.QuoteData) entity.QuoteData {
		return draft.RemovePaymentTerm(q, id)
	})
	response.OK(c, "Payment term removed successfully", h.state())
}

// AppendScope appends a line to one of the scope arrays
func (h *DraftHandler) AppendScope(c *gin.Context) {
	field, ok := parseScopeField(c.Param("field"))
	if !ok {
		response.BadRequest(c, "Unknown scope field")
		return
	}
	var req request.ScopeAppendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	h.session.Apply(func(q entity.QuoteData) entity.QuoteData {
		return draft.AppendScope(q, field, req.Value)
	})
	response.OK(c, "Scope updated successfully", h.state())
}

// SetScope rewrites a line of one of the scope arrays
func (h *DraftHandler) SetScope(c *gin.Context) {
	field, ok := parseScopeField(c.Param("field"))
	if !ok {
		response.BadRequest(c, "Unknown scope field")
		return
	}
	var req request.ScopeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	h.session.Apply(func(q entity.QuoteData) entity.QuoteData {
		return draft.SetScope(q, field, req.Index, req.Value)
	})
	response.OK(c, "Scope updated successfully", h.state())
}

// RemoveScope removes a line from one of the scope arrays
func (h *DraftHandler) RemoveScope(c *gin.Context) {
	field, ok := parseScopeField(c.Param("field"))
	if !ok {
		response.BadRequest(c, "Unknown scope field")
		return
	}
	var req request.ScopeRemoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	h.session.Apply(func(q entity.QuoteData) entity.QuoteData {
		return draft.RemoveScope(q, field, req.Index)
	})
	response.OK(c, "Scope updated successfully", h.state())
}

// ListTemplates returns the builtin pricing, milestone and payment templates
func (h *DraftHandler) ListTemplates(c *gin.Context) {
	response.OK(c, "Templates retrieved successfully", gin.H{
		"pricing":    h.catalog.PricingTemplates(),
		"milestones": h.catalog.MilestoneTemplates(),
		"payments":   h.catalog.PaymentTemplates(),
	})
}

// ApplyPricingTemplate adds a pricing template's items to the draft
func (h *DraftHandler) ApplyPricingTemplate(c *gin.Context) {
	var req request.ApplyTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	tpl := h.catalog.PricingTemplate(req.TemplateID)
	if tpl == nil {
		response.NotFound(c, "Unknown pricing template")
		return
	}
	h.session.Apply(func(q entity.QuoteData) entity.QuoteData {
		return catalog.ApplyPricing(q, tpl)
	})
	response.OK(c, "Pricing template applied successfully", h.state())
}

// ApplyMilestoneTemplate adds a milestone template's phases to the draft
func (h *DraftHandler) ApplyMilestoneTemplate(c *gin.Context) {
	var req request.ApplyTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	tpl := h.catalog.MilestoneTemplate(req.TemplateID)
	if tpl == nil {
		response.NotFound(c, "Unknown milestone template")
		return
	}
	h.session.Apply(func(q entity.QuoteData) entity.QuoteData {
		return catalog.ApplyMilestones(q, tpl)
	})
	response.OK(c, "Milestone template applied successfully", h.state())
}

// ApplyPaymentTemplate adds a payment template's terms to the draft
func (h *DraftHandler) ApplyPaymentTemplate(c *gin.Context) {
	var req request.ApplyTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	tpl := h.catalog.PaymentTemplate(req.TemplateID)
	if tpl == nil {
		response.NotFound(c, "Unknown payment template")
		return
	}
	h.session.Apply(func(q entity.QuoteData) entity.QuoteData {
		return catalog.ApplyPayments(q, tpl)
	})
	response.OK(c, "Payment template applied successfully", h.state())
}

// Preview builds the shared document model for on-screen rendering
func (h *DraftHandler) Preview(c *gin.Context) {
	data := h.session.Data()
	client := h.resolveClient(c, data.ClientID)
	doc := render.Build(data, client, h.renderCfg)
	response.OK(c, "Preview built successfully", doc)
}

// PDF renders the draft to a PDF download
func (h *DraftHandler) PDF(c *gin.Context) {
	data := h.session.Data()
	client := h.resolveClient(c, data.ClientID)
	doc := render.Build(data, client, h.renderCfg)

	raw, err := h.pdf.Generate(doc)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("%s.pdf", data.QuoteNumber)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(200, "application/pdf", raw)
}

// Submit finalizes the draft into a stored quote. The recovery slot is
// cleared only after the quote is persisted; a failed submission leaves the
// draft untouched.
func (h *DraftHandler) Submit(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.SubmitQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	data := h.session.Data()
	quote, err := h.quoteService.SubmitQuote(c.Request.Context(), *userID, data, req.Send)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.session.Clear(c.Request.Context()); err != nil {
		// The quote is stored; a stale recovery slot is the worse of the
		// two outcomes but not worth failing the request over.
		response.Created(c, "Quote submitted; draft cleanup failed", quote)
		return
	}

	response.Created(c, "Quote submitted successfully", quote)
}

func (h *DraftHandler) resolveClient(c *gin.Context, clientID uuid.UUID) *entity.Client {
	if clientID == uuid.Nil || h.clientRepo == nil {
		return nil
	}
	client, err := h.clientRepo.GetByID(c.Request.Context(), clientID)
	if err != nil {
		return nil
	}
	return client
}

func parseScopeField(s string) (draft.ScopeField, bool) {
	switch draft.ScopeField(s) {
	case draft.ScopeObjectives, draft.ScopeInScope, draft.ScopeOutOfScope, draft.ScopeAssumptions, draft.ScopeConstraints:
		return draft.ScopeField(s), true
	}
	return "", false
}
