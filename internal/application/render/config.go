package render

// Config carries the company profile and document defaults injected into
// both renderers at render time. Keeping it explicit (instead of a
// process-wide singleton) keeps the projections testable.
type Config struct {
	CompanyName  string
	Email        string
	Phone        string
	Website      string
	DefaultTerms string
	FooterText   string
	BrandColor   string
}

// DefaultConfig returns the documented fallback profile used when no
// company settings are configured.
func DefaultConfig() Config {
	return Config{
		CompanyName:  "Proposal Forge",
		DefaultTerms: "Quote valid until the date shown. Work begins on receipt of the signed quote and any deposit due on signing.",
		FooterText:   "Thank you for the opportunity to work together.",
		BrandColor:   "#1f2937",
	}
}
