package catalog

import (
	"github.com/proposalforge/agency-api/internal/domain/entity"
	"github.com/proposalforge/agency-api/internal/domain/enum"
)

func builtinPricingTemplates() []PricingTemplate {
	return []PricingTemplate{
		{
			ID:          "web-app-standard",
			Name:        "Web Application (Standard)",
			Description: "Design, build and launch of a standard web application",
			Items: []PricingTemplateItem{
				{Category: enum.ItemCategoryDesign, Name: "UX/UI design", Description: "Wireframes, visual design and design system", Quantity: 1, UnitPrice: 4500},
				{Category: enum.ItemCategoryDevelopment, Name: "Frontend development", Description: "Responsive frontend build", Quantity: 1, UnitPrice: 9000},
				{Category: enum.ItemCategoryDevelopment, Name: "Backend development", Description: "API, data model and integrations", Quantity: 1, UnitPrice: 12000},
				{Category: enum.ItemCategoryInfrastructure, Name: "Hosting setup", Description: "Environment provisioning and CI/CD", Quantity: 1, UnitPrice: 1500},
			},
			EstimatedDuration: 60,
		},
		{
			ID:          "brand-identity",
			Name:        "Brand Identity Package",
			Description: "Logo, brand guidelines and collateral",
			Items: []PricingTemplateItem{
				{Category: enum.ItemCategoryDesign, Name: "Logo design", Description: "Three concepts, two revision rounds", Quantity: 1, UnitPrice: 2500},
				{Category: enum.ItemCategoryDesign, Name: "Brand guidelines", Description: "Typography, color and usage rules", Quantity: 1, UnitPrice: 1800},
				{Category: enum.ItemCategoryDesign, Name: "Stationery set", Description: "Business cards, letterhead, email signature", Quantity: 1, UnitPrice: 900},
			},
			EstimatedDuration: 21,
		},
		{
			ID:          "retainer-monthly",
			Name:        "Monthly Retainer",
			Description: "Ongoing support and maintenance",
			Items: []PricingTemplateItem{
				{Category: enum.ItemCategoryMaintenance, Name: "Maintenance hours", Description: "Bug fixes, patches and monitoring", Quantity: 20, UnitPrice: 95},
				{Category: enum.ItemCategoryConsulting, Name: "Advisory hours", Description: "Roadmap and technical consulting", Quantity: 4, UnitPrice: 150},
			},
		},
	}
}

func builtinMilestoneTemplates() []MilestoneTemplate {
	return []MilestoneTemplate{
		{
			ID:   "four-phase-delivery",
			Name: "Four Phase Delivery",
			Milestones: []entity.Milestone{
				{Title: "Discovery", Description: "Requirements, research and planning", Deliverables: []string{"Project brief", "Technical specification"}, Duration: 10, Percentage: 15},
				{Title: "Design", Description: "UX and visual design", Deliverables: []string{"Wireframes", "High-fidelity designs"}, Duration: 15, Percentage: 25},
				{Title: "Build", Description: "Implementation and integration", Deliverables: []string{"Staging deployment", "Test suite"}, Duration: 25, Percentage: 40},
				{Title: "Launch", Description: "QA, handover and go-live", Deliverables: []string{"Production deployment", "Documentation"}, Duration: 10, Percentage: 20},
			},
		},
		{
			ID:   "sprint-based",
			Name: "Sprint Based",
			Milestones: []entity.Milestone{
				{Title: "Sprint 0", Description: "Setup and backlog grooming", Deliverables: []string{"Groomed backlog"}, Duration: 5, Percentage: 10},
				{Title: "Sprints 1-3", Description: "Core feature delivery", Deliverables: []string{"Working increment per sprint"}, Duration: 30, Percentage: 60},
				{Title: "Hardening", Description: "Stabilization and release", Deliverables: []string{"Release candidate"}, Duration: 10, Percentage: 30},
			},
		},
	}
}

func builtinPaymentTemplates() []PaymentTermTemplate {
	return []PaymentTermTemplate{
		{
			ID:   "fifty-fifty",
			Name: "50/50 Split",
			Terms: []entity.PaymentTerm{
				{Title: "Deposit", Percentage: 50, DueDate: enum.DueDateOnSigning, Description: "Due before work begins"},
				{Title: "Final payment", Percentage: 50, DueDate: enum.DueDateNet15, Description: "Due on delivery"},
			},
		},
		{
			ID:   "thirds",
			Name: "Three Installments",
			Terms: []entity.PaymentTerm{
				{Title: "Deposit", Percentage: 40, DueDate: enum.DueDateOnSigning},
				{Title: "Midpoint", Percentage: 30, DueDate: enum.DueDateMilestone},
				{Title: "Completion", Percentage: 30, DueDate: enum.DueDateNet30},
			},
		},
	}
}
