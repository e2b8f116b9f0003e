// Package render projects a quote draft into its two equivalent document
// forms: the interactive on-screen preview and the print-ready PDF. Both
// consume the same Document model, so every number shown is derived once,
// through the same pricing functions and the same currency formatter.
package render

import (
	"fmt"

	"github.com/proposalforge/agency-api/internal/domain/entity"
	"github.com/proposalforge/agency-api/internal/domain/pricing"
)

// Document is the full section model of a rendered quote. It is a pure
// projection: building it never mutates the draft.
type Document struct {
	Cover      Cover           `json:"cover"`
	Client     ClientInfo      `json:"client"`
	Scope      ScopeSection    `json:"scope"`
	Pricing    PricingSection  `json:"pricing"`
	Timeline   TimelineSection `json:"timeline"`
	Payment    PaymentSection  `json:"payment"`
	Terms      TermsSection    `json:"terms"`
	FooterText string          `json:"footer_text"`
}

// Cover is the title page content.
type Cover struct {
	Title        string `json:"title"`
	QuoteNumber  string `json:"quote_number"`
	CompanyName  string `json:"company_name"`
	ClientName   string `json:"client_name"`
	ProjectType  string `json:"project_type"`
	ValidUntil   string `json:"valid_until"`
	CoverMessage string `json:"cover_message,omitempty"`
	BrandColor   string `json:"brand_color"`
}

// ClientInfo is the resolved client block.
type ClientInfo struct {
	Name    string `json:"name"`
	Company string `json:"company,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

// ScopeSection collects the narrative scope lists.
type ScopeSection struct {
	ExecutiveSummary string   `json:"executive_summary,omitempty"`
	Objectives       []string `json:"objectives"`
	InScope          []string `json:"in_scope"`
	OutOfScope       []string `json:"out_of_scope"`
	Assumptions      []string `json:"assumptions"`
	Constraints      []string `json:"constraints"`
}

// PricingRow is one body row of the pricing table.
type PricingRow struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Discount    string `json:"discount,omitempty"`
	Amount      string `json:"amount"`
}

// PricingSection is the priced table with its derived footer rows. All
// amounts are preformatted strings so that both renderers show identical
// values by construction.
type PricingSection struct {
	Rows          []PricingRow `json:"rows"`
	Subtotal      string       `json:"subtotal"`
	DiscountLabel string       `json:"discount_label,omitempty"`
	Discount      string       `json:"discount,omitempty"`
	TaxLabel      string       `json:"tax_label,omitempty"`
	Tax           string       `json:"tax,omitempty"`
	Total         string       `json:"total"`
}

// TimelineRow is one milestone entry.
type TimelineRow struct {
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Deliverables []string `json:"deliverables"`
	Duration     string   `json:"duration"`
	Share        string   `json:"share"`
	Amount       string   `json:"amount"`
}

// TimelineSection is the milestone plan.
type TimelineSection struct {
	StartDate         string        `json:"start_date,omitempty"`
	EstimatedDuration string        `json:"estimated_duration,omitempty"`
	Rows              []TimelineRow `json:"rows"`
	PercentTotal      string        `json:"percent_total"` // advisory, not enforced
}

// PaymentRow is one scheduled installment.
type PaymentRow struct {
	Title       string `json:"title"`
	Due         string `json:"due"`
	Share       string `json:"share"`
	Amount      string `json:"amount"`
	Description string `json:"description,omitempty"`
}

// PaymentSection is the payment schedule plus the surrounding terms.
type PaymentSection struct {
	Rows                 []PaymentRow `json:"rows"`
	LateFee              string       `json:"late_fee,omitempty"`
	EarlyPaymentDiscount string       `json:"early_payment_discount,omitempty"`
	Methods              []string     `json:"methods"`
}

// TermsSection carries the legal text blocks.
type TermsSection struct {
	TermsAndConditions string `json:"terms_and_conditions"`
	Warranties         string `json:"warranties,omitempty"`
	SupportTerms       string `json:"support_terms,omitempty"`
}

// Build projects a draft, its resolved client and the injected company
// profile into the shared document model. Totals come from the pricing
// package; nothing here re-derives or re-rounds a number.
func Build(q entity.QuoteData, client *entity.Client, cfg Config) Document {
	b := pricing.Calculate(q)
	cur := q.Currency

	doc := Document{
		Cover: Cover{
			Title:        q.Title,
			QuoteNumber:  q.QuoteNumber,
			CompanyName:  cfg.CompanyName,
			ProjectType:  q.ProjectType,
			CoverMessage: q.CustomCoverMessage,
			BrandColor:   q.BrandColor,
		},
		Scope: ScopeSection{
			ExecutiveSummary: q.ExecutiveSummary,
			Objectives:       orEmpty(q.Objectives),
			InScope:          orEmpty(q.Scope),
			OutOfScope:       orEmpty(q.OutOfScope),
			Assumptions:      orEmpty(q.Assumptions),
			Constraints:      orEmpty(q.Constraints),
		},
		Terms: TermsSection{
			TermsAndConditions: q.TermsAndConditions,
			Warranties:         q.Warranties,
			SupportTerms:       q.SupportTerms,
		},
		FooterText: q.FooterText,
	}

	if doc.Cover.BrandColor == "" {
		doc.Cover.BrandColor = cfg.BrandColor
	}
	if doc.Terms.TermsAndConditions == "" {
		doc.Terms.TermsAndConditions = cfg.DefaultTerms
	}
	if doc.FooterText == "" {
		doc.FooterText = cfg.FooterText
	}
	if !q.ValidUntil.IsZero() {
		doc.Cover.ValidUntil = q.ValidUntil.Format("January 2, 2006")
	}

	if client != nil {
		doc.Cover.ClientName = client.Name
		doc.Client = ClientInfo{Name: client.Name}
		if client.Company != nil {
			doc.Client.Company = *client.Company
		}
		if client.Email != nil {
			doc.Client.Email = *client.Email
		}
		if client.Address != nil {
			doc.Client.Address = *client.Address
		}
	}

	doc.Pricing = buildPricing(q, b, cur)
	doc.Timeline = buildTimeline(q, b)
	doc.Payment = buildPayment(q, b, cur)

	return doc
}

func buildPricing(q entity.QuoteData, b pricing.Breakdown, cur string) PricingSection {
	section := PricingSection{
		Rows:     make([]PricingRow, 0, len(q.Items)),
		Subtotal: pricing.Format(b.Subtotal, cur),
		Total:    pricing.Format(b.Total, cur),
	}
	for _, item := range q.Items {
		row := PricingRow{
			Name:        item.Name,
			Description: item.Description,
			Category:    item.Category.String(),
			Quantity:    trimFloat(item.Quantity),
			UnitPrice:   pricing.Format(item.UnitPrice, cur),
			Amount:      pricing.Format(pricing.ItemTotal(item), cur),
		}
		if item.Discount > 0 {
			row.Discount = fmt.Sprintf("%s%%", trimFloat(item.Discount))
		}
		section.Rows = append(section.Rows, row)
	}
	if b.Discount != 0 {
		section.Discount = pricing.Format(b.Discount, cur)
		if q.DiscountType.String() == "fixed" {
			section.DiscountLabel = "Discount"
		} else {
			section.DiscountLabel = fmt.Sprintf("Discount (%s%%)", trimFloat(q.DiscountValue))
		}
	}
	if b.Tax != 0 {
		section.Tax = pricing.Format(b.Tax, cur)
		section.TaxLabel = fmt.Sprintf("Tax (%s%%)", trimFloat(q.TaxRate))
	}
	return section
}

func buildTimeline(q entity.QuoteData, b pricing.Breakdown) TimelineSection {
	section := TimelineSection{
		StartDate:    q.StartDate,
		Rows:         make([]TimelineRow, 0, len(q.Milestones)),
		PercentTotal: fmt.Sprintf("%s%%", trimFloat(pricing.MilestonePercentTotal(q.Milestones))),
	}
	if q.EstimatedDuration > 0 {
		section.EstimatedDuration = fmt.Sprintf("%d days", q.EstimatedDuration)
	}
	for _, m := range q.Milestones {
		section.Rows = append(section.Rows, TimelineRow{
			Title:        m.Title,
			Description:  m.Description,
			Deliverables: orEmpty(m.Deliverables),
			Duration:     fmt.Sprintf("%d days", m.Duration),
			Share:        fmt.Sprintf("%s%%", trimFloat(m.Percentage)),
			Amount:       pricing.Format(pricing.MilestoneAmount(b.Total, m), q.Currency),
		})
	}
	return section
}

func buildPayment(q entity.QuoteData, b pricing.Breakdown, cur string) PaymentSection {
	section := PaymentSection{
		Rows:    make([]PaymentRow, 0, len(q.PaymentTerms)),
		Methods: orEmpty(q.AcceptedPaymentMethods),
	}
	if q.LateFeePercentage > 0 {
		section.LateFee = fmt.Sprintf("%s%% per month on overdue amounts", trimFloat(q.LateFeePercentage))
	}
	if q.EarlyPaymentDiscount > 0 {
		section.EarlyPaymentDiscount = fmt.Sprintf("%s%% for early payment", trimFloat(q.EarlyPaymentDiscount))
	}
	for _, term := range q.PaymentTerms {
		due := term.DueDate.Label()
		if term.CustomDate != "" {
			due = term.CustomDate
		}
		section.Rows = append(section.Rows, PaymentRow{
			Title:       term.Title,
			Due:         due,
			Share:       fmt.Sprintf("%s%%", trimFloat(term.Percentage)),
			Amount:      pricing.Format(pricing.PaymentAmount(b.Total, term), cur),
			Description: term.Description,
		})
	}
	return section
}

// trimFloat renders a float without trailing zeros: 2 -> "2", 2.5 -> "2.5".
func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
