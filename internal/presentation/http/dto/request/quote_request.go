package request

// UpdateQuoteStatusRequest moves a quote through its lifecycle
type UpdateQuoteStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft sent accepted declined"`
}
