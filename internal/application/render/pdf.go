package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// PDFGenerator renders the shared document model into a paginated,
// print-ready PDF. It consumes the same Document a preview shows, so the
// exported numbers can never drift from the on-screen ones.
type PDFGenerator struct {
	cfg Config
}

// NewPDFGenerator creates a PDF generator with the injected company
// profile.
func NewPDFGenerator(cfg Config) *PDFGenerator {
	return &PDFGenerator{cfg: cfg}
}

// Generate produces the PDF bytes for a built document.
func (g *PDFGenerator) Generate(doc Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Quote %s", doc.Cover.QuoteNumber), false)
	pdf.SetAutoPageBreak(true, 20)

	g.coverPage(pdf, doc)
	g.scopePage(pdf, doc)
	g.pricingPage(pdf, doc)
	if len(doc.Timeline.Rows) > 0 {
		g.timelinePage(pdf, doc)
	}
	g.paymentAndTermsPage(pdf, doc)
	g.signaturePage(pdf, doc)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("quote pdf output: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *PDFGenerator) coverPage(pdf *gofpdf.Fpdf, doc Document) {
	pdf.AddPage()
	pdf.Ln(40)

	pdf.SetFont("Helvetica", "B", 28)
	pdf.MultiCell(0, 12, doc.Cover.Title, "", "C", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 13)
	pdf.CellFormat(0, 8, fmt.Sprintf("Quote %s", doc.Cover.QuoteNumber), "", 1, "C", false, 0, "")
	if doc.Cover.ClientName != "" {
		pdf.CellFormat(0, 8, fmt.Sprintf("Prepared for %s", doc.Cover.ClientName), "", 1, "C", false, 0, "")
	}
	if doc.Cover.ProjectType != "" {
		pdf.CellFormat(0, 8, doc.Cover.ProjectType, "", 1, "C", false, 0, "")
	}
	if doc.Cover.ValidUntil != "" {
		pdf.CellFormat(0, 8, fmt.Sprintf("Valid until %s", doc.Cover.ValidUntil), "", 1, "C", false, 0, "")
	}

	if doc.Cover.CoverMessage != "" {
		pdf.Ln(12)
		pdf.SetFont("Helvetica", "I", 11)
		pdf.MultiCell(0, 6, doc.Cover.CoverMessage, "", "C", false)
	}

	pdf.Ln(20)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, doc.Cover.CompanyName, "", 1, "C", false, 0, "")
}

func (g *PDFGenerator) scopePage(pdf *gofpdf.Fpdf, doc Document) {
	pdf.AddPage()
	g.heading(pdf, "Project Scope")

	if doc.Scope.ExecutiveSummary != "" {
		g.subheading(pdf, "Executive Summary")
		g.paragraph(pdf, doc.Scope.ExecutiveSummary)
	}
	if doc.Client.Name != "" {
		g.subheading(pdf, "Client")
		line := doc.Client.Name
		if doc.Client.Company != "" {
			line += " - " + doc.Client.Company
		}
		g.paragraph(pdf, line)
		if doc.Client.Email != "" {
			g.paragraph(pdf, doc.Client.Email)
		}
	}

	g.bulletList(pdf, "Objectives", doc.Scope.Objectives)
	g.bulletList(pdf, "In Scope", doc.Scope.InScope)
	g.bulletList(pdf, "Out of Scope", doc.Scope.OutOfScope)
	g.bulletList(pdf, "Assumptions", doc.Scope.Assumptions)
	g.bulletList(pdf, "Constraints", doc.Scope.Constraints)
}

func (g *PDFGenerator) pricingPage(pdf *gofpdf.Fpdf, doc Document) {
	pdf.AddPage()
	g.heading(pdf, "Investment")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(70, 7, "Item", "B", 0, "", false, 0, "")
	pdf.CellFormat(30, 7, "Category", "B", 0, "", false, 0, "")
	pdf.CellFormat(20, 7, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, "Unit Price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range doc.Pricing.Rows {
		name := row.Name
		if row.Discount != "" {
			name += fmt.Sprintf(" (%s off)", row.Discount)
		}
		pdf.CellFormat(70, 6, trim(name, 45), "", 0, "", false, 0, "")
		pdf.CellFormat(30, 6, row.Category, "", 0, "", false, 0, "")
		pdf.CellFormat(20, 6, row.Quantity, "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, row.UnitPrice, "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, row.Amount, "", 1, "R", false, 0, "")
	}

	pdf.Ln(3)
	g.totalRow(pdf, "Subtotal", doc.Pricing.Subtotal, false)
	if doc.Pricing.Discount != "" {
		g.totalRow(pdf, doc.Pricing.DiscountLabel, "-"+doc.Pricing.Discount, false)
	}
	if doc.Pricing.Tax != "" {
		g.totalRow(pdf, doc.Pricing.TaxLabel, doc.Pricing.Tax, false)
	}
	g.totalRow(pdf, "Total", doc.Pricing.Total, true)
}

func (g *PDFGenerator) timelinePage(pdf *gofpdf.Fpdf, doc Document) {
	pdf.AddPage()
	g.heading(pdf, "Timeline & Milestones")

	if doc.Timeline.StartDate != "" {
		g.paragraph(pdf, fmt.Sprintf("Proposed start: %s", doc.Timeline.StartDate))
	}
	if doc.Timeline.EstimatedDuration != "" {
		g.paragraph(pdf, fmt.Sprintf("Estimated duration: %s", doc.Timeline.EstimatedDuration))
	}
	pdf.Ln(2)

	for _, row := range doc.Timeline.Rows {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(100, 7, row.Title, "", 0, "", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 7, fmt.Sprintf("%s  |  %s  |  %s", row.Duration, row.Share, row.Amount), "", 1, "R", false, 0, "")
		if row.Description != "" {
			g.paragraph(pdf, row.Description)
		}
		for _, d := range row.Deliverables {
			pdf.SetFont("Helvetica", "", 10)
			pdf.CellFormat(0, 5, "  - "+trim(d, 90), "", 1, "", false, 0, "")
		}
		pdf.Ln(3)
	}
}

func (g *PDFGenerator) paymentAndTermsPage(pdf *gofpdf.Fpdf, doc Document) {
	pdf.AddPage()
	g.heading(pdf, "Payment Schedule")

	if len(doc.Payment.Rows) > 0 {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, 7, "Payment", "B", 0, "", false, 0, "")
		pdf.CellFormat(60, 7, "Due", "B", 0, "", false, 0, "")
		pdf.CellFormat(30, 7, "Share", "B", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, "Amount", "B", 1, "R", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, row := range doc.Payment.Rows {
			pdf.CellFormat(60, 6, trim(row.Title, 38), "", 0, "", false, 0, "")
			pdf.CellFormat(60, 6, trim(row.Due, 38), "", 0, "", false, 0, "")
			pdf.CellFormat(30, 6, row.Share, "", 0, "R", false, 0, "")
			pdf.CellFormat(30, 6, row.Amount, "", 1, "R", false, 0, "")
		}
		pdf.Ln(4)
	}

	if doc.Payment.LateFee != "" {
		g.paragraph(pdf, "Late fee: "+doc.Payment.LateFee)
	}
	if doc.Payment.EarlyPaymentDiscount != "" {
		g.paragraph(pdf, "Early payment: "+doc.Payment.EarlyPaymentDiscount)
	}
	if len(doc.Payment.Methods) > 0 {
		g.bulletList(pdf, "Accepted payment methods", doc.Payment.Methods)
	}

	pdf.Ln(4)
	g.heading(pdf, "Terms & Conditions")
	g.paragraph(pdf, doc.Terms.TermsAndConditions)
	if doc.Terms.Warranties != "" {
		g.subheading(pdf, "Warranties")
		g.paragraph(pdf, doc.Terms.Warranties)
	}
	if doc.Terms.SupportTerms != "" {
		g.subheading(pdf, "Support")
		g.paragraph(pdf, doc.Terms.SupportTerms)
	}
}

func (g *PDFGenerator) signaturePage(pdf *gofpdf.Fpdf, doc Document) {
	pdf.AddPage()
	g.heading(pdf, "Acceptance")
	g.paragraph(pdf, "By signing below, both parties agree to the scope, pricing and terms described in this quote.")
	pdf.Ln(20)

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(90, 7, "_______________________________", "", 0, "", false, 0, "")
	pdf.CellFormat(0, 7, "_______________________________", "", 1, "", false, 0, "")
	pdf.CellFormat(90, 6, doc.Cover.CompanyName, "", 0, "", false, 0, "")
	pdf.CellFormat(0, 6, doc.Cover.ClientName, "", 1, "", false, 0, "")
	pdf.CellFormat(90, 6, "Date:", "", 0, "", false, 0, "")
	pdf.CellFormat(0, 6, "Date:", "", 1, "", false, 0, "")

	pdf.Ln(25)
	pdf.SetFont("Helvetica", "", 9)
	if doc.FooterText != "" {
		pdf.MultiCell(0, 5, doc.FooterText, "", "C", false)
	}
	pdf.CellFormat(0, 5, fmt.Sprintf("Generated %s", time.Now().Format("2006-01-02")), "", 1, "C", false, 0, "")
}

func (g *PDFGenerator) totalRow(pdf *gofpdf.Fpdf, label, amount string, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	pdf.SetFont("Helvetica", style, 10)
	pdf.CellFormat(120, 6, "", "", 0, "", false, 0, "")
	pdf.CellFormat(30, 6, label, "", 0, "R", false, 0, "")
	pdf.CellFormat(30, 6, amount, "", 1, "R", false, 0, "")
}

func (g *PDFGenerator) heading(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, text, "", 1, "", false, 0, "")
	pdf.Ln(2)
}

func (g *PDFGenerator) subheading(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, text, "", 1, "", false, 0, "")
}

func (g *PDFGenerator) paragraph(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, text, "", "", false)
	pdf.Ln(1)
}

func (g *PDFGenerator) bulletList(pdf *gofpdf.Fpdf, title string, items []string) {
	if len(items) == 0 {
		return
	}
	g.subheading(pdf, title)
	pdf.SetFont("Helvetica", "", 11)
	for _, item := range items {
		pdf.CellFormat(0, 6, "  - "+trim(item, 90), "", 1, "", false, 0, "")
	}
	pdf.Ln(2)
}

func trim(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "..."
}
