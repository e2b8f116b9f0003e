// Package catalog holds the reusable quote presets: pricing bundles,
// milestone sets and payment schedules that seed a draft quickly.
package catalog

import (
	"github.com/google/uuid"
	"github.com/proposalforge/agency-api/internal/domain/entity"
	"github.com/proposalforge/agency-api/internal/domain/enum"
)

// PricingTemplateItem is a partial QuoteItem definition; the id is
// generated at application time.
type PricingTemplateItem struct {
	Category    enum.ItemCategory `json:"category"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Quantity    float64           `json:"quantity"`
	UnitPrice   float64           `json:"unit_price"`
	Discount    *float64          `json:"discount,omitempty"`
}

// PricingTemplate is a named bundle of line items, optionally carrying a
// project duration estimate.
type PricingTemplate struct {
	ID                string                `json:"id"`
	Name              string                `json:"name"`
	Description       string                `json:"description"`
	Items             []PricingTemplateItem `json:"items"`
	EstimatedDuration int                   `json:"estimated_duration,omitempty"` // days; overwrites the draft's value when set
}

// MilestoneTemplate is a named bundle of milestone definitions.
type MilestoneTemplate struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Milestones []entity.Milestone `json:"milestones"` // template entries carry empty ids
}

// PaymentTermTemplate is a named bundle of payment term definitions.
type PaymentTermTemplate struct {
	ID    string               `json:"id"`
	Name  string               `json:"name"`
	Terms []entity.PaymentTerm `json:"terms"` // template entries carry empty ids
}

// Catalog is the read-only collection of presets available to the wizard.
type Catalog struct {
	pricing    []PricingTemplate
	milestones []MilestoneTemplate
	payments   []PaymentTermTemplate
}

// New returns a catalog with the built-in presets.
func New() *Catalog {
	return &Catalog{
		pricing:    builtinPricingTemplates(),
		milestones: builtinMilestoneTemplates(),
		payments:   builtinPaymentTemplates(),
	}
}

// PricingTemplates lists the pricing presets.
func (c *Catalog) PricingTemplates() []PricingTemplate { return c.pricing }

// MilestoneTemplates lists the milestone presets.
func (c *Catalog) MilestoneTemplates() []MilestoneTemplate { return c.milestones }

// PaymentTemplates lists the payment schedule presets.
func (c *Catalog) PaymentTemplates() []PaymentTermTemplate { return c.payments }

// PricingTemplate looks up a pricing preset by id.
func (c *Catalog) PricingTemplate(id string) *PricingTemplate {
	for i := range c.pricing {
		if c.pricing[i].ID == id {
			return &c.pricing[i]
		}
	}
	return nil
}

// MilestoneTemplate looks up a milestone preset by id.
func (c *Catalog) MilestoneTemplate(id string) *MilestoneTemplate {
	for i := range c.milestones {
		if c.milestones[i].ID == id {
			return &c.milestones[i]
		}
	}
	return nil
}

// PaymentTemplate looks up a payment schedule preset by id.
func (c *Catalog) PaymentTemplate(id string) *PaymentTermTemplate {
	for i := range c.payments {
		if c.payments[i].ID == id {
			return &c.payments[i]
		}
	}
	return nil
}

// ApplyPricing appends freshly-id'd copies of the template items to the
// draft. Application is additive only: applying the same template twice
// doubles the lines, which is the intended wizard behavior. When the
// template declares an estimated duration it overwrites the draft's value.
func ApplyPricing(q entity.QuoteData, tpl *PricingTemplate) entity.QuoteData {
	if tpl == nil {
		return q
	}
	items := make([]entity.QuoteItem, 0, len(q.Items)+len(tpl.Items))
	items = append(items, q.Items...)
	for _, ti := range tpl.Items {
		discount := 0.0
		if ti.Discount != nil {
			discount = *ti.Discount
		}
		items = append(items, entity.QuoteItem{
			ID:          uuid.NewString(),
			Category:    ti.Category,
			Name:        ti.Name,
			Description: ti.Description,
			Quantity:    ti.Quantity,
			UnitPrice:   ti.UnitPrice,
			Discount:    discount,
			Taxable:     true,
		})
	}
	q.Items = items
	if tpl.EstimatedDuration > 0 {
		q.EstimatedDuration = tpl.EstimatedDuration
	}
	return q
}

// ApplyMilestones appends freshly-id'd copies of the template milestones,
// preserving every other field verbatim.
func ApplyMilestones(q entity.QuoteData, tpl *MilestoneTemplate) entity.QuoteData {
	if tpl == nil {
		return q
	}
	milestones := make([]entity.Milestone, 0, len(q.Milestones)+len(tpl.Milestones))
	milestones = append(milestones, q.Milestones...)
	for _, tm := range tpl.Milestones {
		m := tm
		m.ID = uuid.NewString()
		m.Deliverables = append([]string(nil), tm.Deliverables...)
		m.Dependencies = append([]string(nil), tm.Dependencies...)
		milestones = append(milestones, m)
	}
	q.Milestones = milestones
	return q
}

// ApplyPayments appends freshly-id'd copies of the template payment terms.
// A milestone cross-reference supplied by the template is kept as-is.
func ApplyPayments(q entity.QuoteData, tpl *PaymentTermTemplate) entity.QuoteData {
	if tpl == nil {
		return q
	}
	terms := make([]entity.PaymentTerm, 0, len(q.PaymentTerms)+len(tpl.Terms))
	terms = append(terms, q.PaymentTerms...)
	for _, tt := range tpl.Terms {
		term := tt
		term.ID = uuid.NewString()
		terms = append(terms, term)
	}
	q.PaymentTerms = terms
	return q
}
