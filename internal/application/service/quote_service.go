package service

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/proposalforge/agency-api/internal/application/draft"
	"github.com/proposalforge/agency-api/internal/domain/entity"
	"github.com/proposalforge/agency-api/internal/domain/enum"
	"github.com/proposalforge/agency-api/internal/domain/pricing"
	"github.com/proposalforge/agency-api/internal/domain/repository"
	"github.com/proposalforge/agency-api/pkg/apperror"
	"github.com/proposalforge/agency-api/pkg/email"
	"github.com/proposalforge/agency-api/pkg/pagination"
	"github.com/proposalforge/agency-api/pkg/utils"
)

// QuoteService handles quote submission and lifecycle operations
type QuoteService struct {
	quoteRepo    repository.QuoteRepository
	clientRepo   repository.ClientRepository
	emailService *email.EmailService
}

// NewQuoteService creates a new quote service
func NewQuoteService(
	quoteRepo repository.QuoteRepository,
	clientRepo repository.ClientRepository,
	emailService *email.EmailService,
) *QuoteService {
	return &QuoteService{
		quoteRepo:    quoteRepo,
		clientRepo:   clientRepo,
		emailService: emailService,
	}
}

// SubmitQuote finalizes a wizard draft into a persisted quote. The stored
// quote number is assigned here; the number the draft carried is only a
// working label. When send is true the quote lands as sent and the client
// is notified, otherwise it lands as draft for later sending.
func (s *QuoteService) SubmitQuote(ctx context.Context, userID uuid.UUID, data entity.QuoteData, send bool) (*entity.Quote, error) {
	breakdown := pricing.Calculate(data)

	var clientID *uuid.UUID
	var client *entity.Client
	if data.ClientID != uuid.Nil {
		found, err := s.clientRepo.GetByID(ctx, data.ClientID)
		if err != nil {
			return nil, err
		}
		if found == nil {
			return nil, apperror.NewNotFoundError("Client")
		}
		client = found
		clientID = &found.ID
	}

	status := enum.QuoteStatusDraft
	if send {
		status = enum.QuoteStatusSent
	}

	quoteNumber := utils.GenerateQuoteNumber()
	data.QuoteNumber = quoteNumber

	quote := &entity.Quote{
		UserID:      userID,
		ClientID:    clientID,
		QuoteNumber: quoteNumber,
		Title:       data.Title,
		Status:      status,
		Currency:    data.Currency,
		Subtotal:    breakdown.Subtotal,
		Discount:    breakdown.Discount,
		Tax:         breakdown.Tax,
		Total:       breakdown.Total,
		ValidUntil:  data.ValidUntil,
		Document:    draft.Clone(data),
	}

	if err := s.quoteRepo.Create(ctx, quote); err != nil {
		return nil, err
	}

	if send && client != nil && client.Email != nil && s.emailService != nil {
		if err := s.notifyClient(quote, client); err != nil {
			log.Printf("Warning: quote %s stored but notification failed: %v", quote.QuoteNumber, err)
		}
	}

	return s.quoteRepo.GetByID(ctx, quote.ID)
}

// GetQuote retrieves a quote by ID
func (s *QuoteService) GetQuote(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}
	return quote, nil
}

// GetQuoteByNumber retrieves a quote by its human-readable number
func (s *QuoteService) GetQuoteByNumber(ctx context.Context, quoteNumber string) (*entity.Quote, error) {
	quote, err := s.quoteRepo.GetByQuoteNumber(ctx, quoteNumber)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}
	return quote, nil
}

// ListQuotes returns quotes for a user with pagination
func (s *QuoteService) ListQuotes(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, status *enum.QuoteStatus, search string) ([]entity.Quote, *pagination.Pagination, error) {
	quotes, total, err := s.quoteRepo.List(ctx, userID, params, status, search)
	if err != nil {
		return nil, nil, err
	}
	return quotes, pagination.NewPagination(params.Page, params.PerPage, total), nil
}

// UpdateQuoteStatus moves a quote through its lifecycle. Draft quotes can
// be sent; sent quotes can be accepted or declined.
func (s *QuoteService) UpdateQuoteStatus(ctx context.Context, id uuid.UUID, status enum.QuoteStatus) (*entity.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}

	if !validTransition(quote.Status, status) {
		return nil, apperror.NewBadRequestError("Invalid status transition from " + quote.Status.String() + " to " + status.String())
	}

	if err := s.quoteRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	if status == enum.QuoteStatusSent && quote.Client != nil && quote.Client.Email != nil && s.emailService != nil {
		if err := s.notifyClient(quote, quote.Client); err != nil {
			log.Printf("Warning: quote %s status updated but notification failed: %v", quote.QuoteNumber, err)
		}
	}

	return s.quoteRepo.GetByID(ctx, id)
}

// DeleteQuote removes a quote
func (s *QuoteService) DeleteQuote(ctx context.Context, id uuid.UUID) error {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if quote == nil {
		return apperror.NewNotFoundError("Quote")
	}
	return s.quoteRepo.Delete(ctx, id)
}

func (s *QuoteService) notifyClient(quote *entity.Quote, client *entity.Client) error {
	return s.emailService.SendQuoteEmail(*client.Email, email.QuoteEmailData{
		ClientName:  client.Name,
		QuoteNumber: quote.QuoteNumber,
		Title:       quote.Document.Title,
		Total:       pricing.Format(quote.Total, quote.Currency),
		ValidUntil:  quote.ValidUntil.Format("January 2, 2006"),
	})
}

func validTransition(from, to enum.QuoteStatus) bool {
	switch from {
	case enum.QuoteStatusDraft:
		return to == enum.QuoteStatusSent
	case enum.QuoteStatusSent:
		return to == enum.QuoteStatusAccepted || to == enum.QuoteStatusDeclined
	default:
		return false
	}
}
