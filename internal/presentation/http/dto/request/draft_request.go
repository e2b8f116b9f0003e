package request

// UpdateFieldRequest patches a single field of a collection entry. Value is
// whatever JSON the client sent; the draft engine coerces it.
type UpdateFieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value any    `json:"value"`
}

// ApplyTemplateRequest applies a catalog template to the current draft
type ApplyTemplateRequest struct {
	TemplateID string `json:"template_id" binding:"required"`
}

// ScopeAppendRequest appends a line to one of the scope arrays
type ScopeAppendRequest struct {
	Value string `json:"value" binding:"required"`
}

// ScopeUpdateRequest rewrites a line of one of the scope arrays
type ScopeUpdateRequest struct {
	Index int    `json:"index" binding:"min=0"`
	Value string `json:"value"`
}

// ScopeRemoveRequest removes a line from one of the scope arrays
type ScopeRemoveRequest struct {
	Index int `json:"index" binding:"min=0"`
}

// GoToStepRequest jumps the wizard to a specific step
type GoToStepRequest struct {
	Step int `json:"step" binding:"required,min=1,max=6"`
}

// SubmitQuoteRequest finalizes the current draft into a stored quote
type SubmitQuoteRequest struct {
	Send bool `json:"send"`
}
