package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/proposalforge/agency-api/internal/domain/enum"
	"gorm.io/gorm"
)

// QuoteItem represents one priced line inside a quote document
type QuoteItem struct {
	ID          string            `json:"id"`
	Category    enum.ItemCategory `json:"category"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Quantity    float64           `json:"quantity"`
	UnitPrice   float64           `json:"unit_price"`
	Discount    float64           `json:"discount"` // percentage off this item only, 0-100
	Taxable     bool              `json:"taxable"`
}

// Milestone represents a named project phase with its cost share
type Milestone struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Deliverables []string `json:"deliverables"`
	Duration     int      `json:"duration"`   // days
	Percentage   float64  `json:"percentage"` // share of total cost, 0-100
	Dependencies []string `json:"dependencies"`
}

// PaymentTerm represents one scheduled installment of the quote total
type PaymentTerm struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Percentage  float64          `json:"percentage"` // share of grand total, 0-100
	DueDate     enum.DueDateRule `json:"due_date"`
	MilestoneID string           `json:"milestone_id,omitempty"` // set when DueDate is milestone
	CustomDate  string           `json:"custom_date,omitempty"`  // set when DueDate is custom
	Description string           `json:"description,omitempty"`
}

// QuoteData is the full editable quote document. It is the single aggregate
// the wizard edits; all nested collections are addressed by generated id
// within this one draft.
type QuoteData struct {
	// Identity
	Title       string    `json:"title"`
	QuoteNumber string    `json:"quote_number"`
	ClientID    uuid.UUID `json:"client_id"`
	ProjectType string    `json:"project_type"`
	Industry    string    `json:"industry"`
	ValidUntil  time.Time `json:"valid_until"`

	// Narrative
	ExecutiveSummary string   `json:"executive_summary"`
	Objectives       []string `json:"objectives"`
	Scope            []string `json:"scope"`
	OutOfScope       []string `json:"out_of_scope"`
	Assumptions      []string `json:"assumptions"`
	Constraints      []string `json:"constraints"`
	InternalNotes    string   `json:"internal_notes"`

	// Pricing
	Items         []QuoteItem       `json:"items"`
	DiscountType  enum.DiscountType `json:"discount_type"`
	DiscountValue float64           `json:"discount_value"`
	TaxRate       float64           `json:"tax_rate"`
	Currency      string            `json:"currency"`

	// Timeline
	StartDate         string      `json:"start_date"`
	EstimatedDuration int         `json:"estimated_duration"` // days
	Milestones        []Milestone `json:"milestones"`

	// Payment
	PaymentTerms           []PaymentTerm `json:"payment_terms"`
	LateFeePercentage      float64       `json:"late_fee_percentage"`
	EarlyPaymentDiscount   float64       `json:"early_payment_discount"`
	AcceptedPaymentMethods []string      `json:"accepted_payment_methods"`

	// Legal
	TermsAndConditions string `json:"terms_and_conditions"`
	Warranties         string `json:"warranties"`
	SupportTerms       string `json:"support_terms"`

	// Presentation
	BrandColor          string `json:"brand_color"`
	IncludeCompanyLogo  bool   `json:"include_company_logo"`
	IncludePortfolio    bool   `json:"include_portfolio"`
	IncludeTestimonials bool   `json:"include_testimonials"`
	CustomCoverMessage  string `json:"custom_cover_message"`
	FooterText          string `json:"footer_text"`
}

// Quote is the persisted record created when a draft is submitted. The
// header columns carry the derived totals as computed at submission time;
// Document preserves the full editable payload.
type Quote struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	ClientID    *uuid.UUID       `gorm:"type:uuid;index" json:"client_id,omitempty"`
	QuoteNumber string           `gorm:"size:100;unique;not null" json:"quote_number"`
	Title       string           `gorm:"size:255" json:"title"`
	Status      enum.QuoteStatus `gorm:"default:0" json:"status"`
	Currency    string           `gorm:"size:10;default:'USD'" json:"currency"`
	Subtotal    float64          `gorm:"type:decimal(15,2);default:0" json:"subtotal"`
	Discount    float64          `gorm:"type:decimal(15,2);default:0" json:"discount"`
	Tax         float64          `gorm:"type:decimal(15,2);default:0" json:"tax"`
	Total       float64          `gorm:"type:decimal(15,2);default:0" json:"total"`
	ValidUntil  time.Time        `gorm:"type:date" json:"valid_until"`
	Document    QuoteData        `gorm:"serializer:json" json:"document"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	User   User    `gorm:"foreignKey:UserID" json:"-"`
	Client *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}

// BeforeCreate generates a UUID before creating a new quote
func (q *Quote) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Quote model
func (Quote) TableName() string {
	return "quotes"
}
