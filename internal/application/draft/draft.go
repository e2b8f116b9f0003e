// Package draft owns the in-progress quote: the editable aggregate, the
// wizard step sequence and the debounced local recovery store.
package draft

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/proposalforge/agency-api/internal/domain/entity"
	"github.com/proposalforge/agency-api/internal/domain/enum"
	"github.com/proposalforge/agency-api/pkg/utils"
)

// ScopeField names one of the flat string-array fields on the draft.
type ScopeField string

const (
	ScopeObjectives  ScopeField = "objectives"
	ScopeInScope     ScopeField = "scope"
	ScopeOutOfScope  ScopeField = "out_of_scope"
	ScopeAssumptions ScopeField = "assumptions"
	ScopeConstraints ScopeField = "constraints"
)

// NewQuoteData returns a fresh draft with a generated quote number and a
// 30 day validity window.
func NewQuoteData() entity.QuoteData {
	return entity.QuoteData{
		QuoteNumber:            GenerateQuoteNumber(),
		ValidUntil:             time.Now().UTC().AddDate(0, 0, 30).Truncate(24 * time.Hour),
		Objectives:             []string{},
		Scope:                  []string{},
		OutOfScope:             []string{},
		Assumptions:            []string{},
		Constraints:            []string{},
		Items:                  []entity.QuoteItem{},
		DiscountType:           enum.DiscountTypePercentage,
		Currency:               "USD",
		Milestones:             []entity.Milestone{},
		PaymentTerms:           []entity.PaymentTerm{},
		AcceptedPaymentMethods: []string{},
	}
}

// GenerateQuoteNumber produces a human-readable draft quote number. The
// server assigns the final number at submission time, in the same format.
func GenerateQuoteNumber() string {
	return utils.GenerateQuoteNumber()
}

// Clone deep-copies a draft so that mutations never alias a previous
// aggregate value.
func Clone(q entity.QuoteData) entity.QuoteData {
	out := q
	out.Objectives = append([]string(nil), q.Objectives...)
	out.Scope = append([]string(nil), q.Scope...)
	out.OutOfScope = append([]string(nil), q.OutOfScope...)
	out.Assumptions = append([]string(nil), q.Assumptions...)
	out.Constraints = append([]string(nil), q.Constraints...)
	out.AcceptedPaymentMethods = append([]string(nil), q.AcceptedPaymentMethods...)
	out.Items = append([]entity.QuoteItem(nil), q.Items...)
	out.Milestones = make([]entity.Milestone, len(q.Milestones))
	for i, m := range q.Milestones {
		m.Deliverables = append([]string(nil), m.Deliverables...)
		m.Dependencies = append([]string(nil), m.Dependencies...)
		out.Milestones[i] = m
	}
	out.PaymentTerms = append([]entity.PaymentTerm(nil), q.PaymentTerms...)
	return out
}

// AddItem appends a zeroed line item with a generated id and returns the
// new aggregate.
func AddItem(q entity.QuoteData) entity.QuoteData {
	out := Clone(q)
	out.Items = append(out.Items, entity.QuoteItem{
		ID:       uuid.NewString(),
		Category: enum.ItemCategoryDevelopment,
		Quantity: 1,
		Taxable:  true,
	})
	return out
}

// UpdateItem replaces one field on the item matching id. Unknown ids and
// unknown fields are no-ops; no validation happens at this layer.
func UpdateItem(q entity.QuoteData, id, field string, value any) entity.QuoteData {
	out := Clone(q)
	for i := range out.Items {
		if out.Items[i].ID != id {
			continue
		}
		switch field {
		case "category":
			out.Items[i].Category = asCategory(value)
		case "name":
			out.Items[i].Name = asString(value)
		case "description":
			out.Items[i].Description = asString(value)
		case "quantity":
			out.Items[i].Quantity = asFloat(value)
		case "unit_price":
			out.Items[i].UnitPrice = asFloat(value)
		case "discount":
			out.Items[i].Discount = asFloat(value)
		case "taxable":
			out.Items[i].Taxable = asBool(value)
		}
		break
	}
	return out
}

// RemoveItem filters out the item matching id.
func RemoveItem(q entity.QuoteData, id string) entity.QuoteData {
	out := Clone(q)
	items := out.Items[:0]
	for _, item := range out.Items {
		if item.ID != id {
			items = append(items, item)
		}
	}
	out.Items = items
	return out
}

// AddMilestone appends a zeroed milestone with a generated id.
func AddMilestone(q entity.QuoteData) entity.QuoteData {
	out := Clone(q)
	out.Milestones = append(out.Milestones, entity.Milestone{
		ID:           uuid.NewString(),
		Deliverables: []string{},
		Dependencies: []string{},
	})
	return out
}

// UpdateMilestone replaces one field on the milestone matching id.
func UpdateMilestone(q entity.QuoteData, id, field string, value any) entity.QuoteData {
	out := Clone(q)
	for i := range out.Milestones {
		if out.Milestones[i].ID != id {
			continue
		}
		switch field {
		case "title":
			out.Milestones[i].Title = asString(value)
		case "description":
			out.Milestones[i].Description = asString(value)
		case "deliverables":
			out.Milestones[i].Deliverables = asStrings(value)
		case "duration":
			out.Milestones[i].Duration = asInt(value)
		case "percentage":
			out.Milestones[i].Percentage = asFloat(value)
		case "dependencies":
			out.Milestones[i].Dependencies = asStrings(value)
		}
		break
	}
	return out
}

// RemoveMilestone filters out the milestone matching id.
func RemoveMilestone(q entity.QuoteData, id string) entity.QuoteData {
	out := Clone(q)
	milestones := out.Milestones[:0]
	for _, m := range out.Milestones {
		if m.ID != id {
			milestones = append(milestones, m)
		}
	}
	out.Milestones = milestones
	return out
}

// AddPaymentTerm appends a zeroed payment term with a generated id.
func AddPaymentTerm(q entity.QuoteData) entity.QuoteData {
	out := Clone(q)
	out.PaymentTerms = append(out.PaymentTerms, entity.PaymentTerm{
		ID:      uuid.NewString(),
		DueDate: enum.DueDateOnSigning,
	})
	return out
}

// UpdatePaymentTerm replaces one field on the payment term matching id.
func UpdatePaymentTerm(q entity.QuoteData, id, field string, value any) entity.QuoteData {
	out := Clone(q)
	for i := range out.PaymentTerms {
		if out.PaymentTerms[i].ID != id {
			continue
		}
		switch field {
		case "title":
			out.PaymentTerms[i].Title = asString(value)
		case "percentage":
			out.PaymentTerms[i].Percentage = asFloat(value)
		case "due_date":
			out.PaymentTerms[i].DueDate = asDueDate(value)
		case "milestone_id":
			out.PaymentTerms[i].MilestoneID = asString(value)
		case "custom_date":
			out.PaymentTerms[i].CustomDate = asString(value)
		case "description":
			out.PaymentTerms[i].Description = asString(value)
		}
		break
	}
	return out
}

// RemovePaymentTerm filters out the payment term matching id.
func RemovePaymentTerm(q entity.QuoteData, id string) entity.QuoteData {
	out := Clone(q)
	terms := out.PaymentTerms[:0]
	for _, t := range out.PaymentTerms {
		if t.ID != id {
			terms = append(terms, t)
		}
	}
	out.PaymentTerms = terms
	return out
}

// AppendScope appends one entry to a flat string-array field.
func AppendScope(q entity.QuoteData, field ScopeField, value string) entity.QuoteData {
	out := Clone(q)
	arr := scopeSlice(&out, field)
	if arr != nil {
		*arr = append(*arr, value)
	}
	return out
}

// SetScope replaces the entry at index; out-of-range indexes are no-ops.
func SetScope(q entity.QuoteData, field ScopeField, index int, value string) entity.QuoteData {
	out := Clone(q)
	arr := scopeSlice(&out, field)
	if arr != nil && index >= 0 && index < len(*arr) {
		(*arr)[index] = value
	}
	return out
}

// RemoveScope removes the entry at index; out-of-range indexes are no-ops.
func RemoveScope(q entity.QuoteData, field ScopeField, index int) entity.QuoteData {
	out := Clone(q)
	arr := scopeSlice(&out, field)
	if arr != nil && index >= 0 && index < len(*arr) {
		*arr = append((*arr)[:index], (*arr)[index+1:]...)
	}
	return out
}

func scopeSlice(q *entity.QuoteData, field ScopeField) *[]string {
	switch field {
	case ScopeObjectives:
		return &q.Objectives
	case ScopeInScope:
		return &q.Scope
	case ScopeOutOfScope:
		return &q.OutOfScope
	case ScopeAssumptions:
		return &q.Assumptions
	case ScopeConstraints:
		return &q.Constraints
	}
	return nil
}

// Input coercion: blank or malformed values default to zero values rather
// than erroring, matching the parse-or-default boundary of the wizard.

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

func asInt(v any) int {
	return int(asFloat(v))
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asStrings(v any) []string {
	switch arr := v.(type) {
	case []string:
		return append([]string(nil), arr...)
	case []any:
		out := make([]string, 0, len(arr))
		for _, e := range arr {
			out = append(out, asString(e))
		}
		return out
	}
	return []string{}
}

func asCategory(v any) enum.ItemCategory {
	switch s := asString(v); s {
	case "development":
		return enum.ItemCategoryDevelopment
	case "design":
		return enum.ItemCategoryDesign
	case "infrastructure":
		return enum.ItemCategoryInfrastructure
	case "maintenance":
		return enum.ItemCategoryMaintenance
	case "consulting":
		return enum.ItemCategoryConsulting
	default:
		return enum.ItemCategoryCustom
	}
}

func asDueDate(v any) enum.DueDateRule {
	switch asString(v) {
	case "milestone":
		return enum.DueDateMilestone
	case "net15":
		return enum.DueDateNet15
	case "net30":
		return enum.DueDateNet30
	case "net60":
		return enum.DueDateNet60
	case "custom":
		return enum.DueDateCustom
	default:
		return enum.DueDateOnSigning
	}
}
