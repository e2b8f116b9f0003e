package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proposalforge/agency-api/internal/application/draft"
	"github.com/proposalforge/agency-api/internal/domain/entity"
	"github.com/proposalforge/agency-api/internal/domain/enum"
	"github.com/proposalforge/agency-api/internal/domain/pricing"
	"github.com/proposalforge/agency-api/pkg/apperror"
	"github.com/proposalforge/agency-api/pkg/pagination"
)

type fakeQuoteRepo struct {
	quotes map[uuid.UUID]*entity.Quote
}

func newFakeQuoteRepo() *fakeQuoteRepo {
	return &fakeQuoteRepo{quotes: make(map[uuid.UUID]*entity.Quote)}
}

func (r *fakeQuoteRepo) Create(ctx context.Context, quote *entity.Quote) error {
	if quote.ID == uuid.Nil {
		quote.ID = uuid.New()
	}
	stored := *quote
	r.quotes[quote.ID] = &stored
	return nil
}

func (r *fakeQuoteRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	quote, ok := r.quotes[id]
	if !ok {
		return nil, nil
	}
	copied := *quote
	return &copied, nil
}

func (r *fakeQuoteRepo) GetByQuoteNumber(ctx context.Context, quoteNumber string) (*entity.Quote, error) {
	for _, quote := range r.quotes {
		if quote.QuoteNumber == quoteNumber {
			copied := *quote
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeQuoteRepo) Update(ctx context.Context, quote *entity.Quote) error {
	stored := *quote
	r.quotes[quote.ID] = &stored
	return nil
}

func (r *fakeQuoteRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.QuoteStatus) error {
	if quote, ok := r.quotes[id]; ok {
		quote.Status = status
	}
	return nil
}

func (r *fakeQuoteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.quotes, id)
	return nil
}

func (r *fakeQuoteRepo) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, status *enum.QuoteStatus, search string) ([]entity.Quote, int64, error) {
	var out []entity.Quote
	for _, quote := range r.quotes {
		if quote.UserID != userID {
			continue
		}
		if status != nil && quote.Status != *status {
			continue
		}
		out = append(out, *quote)
	}
	return out, int64(len(out)), nil
}

type fakeClientRepo struct {
	clients map[uuid.UUID]*entity.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[uuid.UUID]*entity.Client)}
}

func (r *fakeClientRepo) Create(ctx context.Context, client *entity.Client) error {
	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}
	r.clients[client.ID] = client
	return nil
}

func (r *fakeClientRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	client, ok := r.clients[id]
	if !ok {
		return nil, nil
	}
	return client, nil
}

func (r *fakeClientRepo) GetByEmail(ctx context.Context, email string) (*entity.Client, error) {
	for _, client := range r.clients {
		if client.Email != nil && *client.Email == email {
			return client, nil
		}
	}
	return nil, nil
}

func (r *fakeClientRepo) Update(ctx context.Context, client *entity.Client) error {
	r.clients[client.ID] = client
	return nil
}

func (r *fakeClientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.clients, id)
	return nil
}

func (r *fakeClientRepo) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Client, int64, error) {
	var out []entity.Client
	for _, client := range r.clients {
		if client.UserID == userID {
			out = append(out, *client)
		}
	}
	return out, int64(len(out)), nil
}

func testDraftData() entity.QuoteData {
	data := draft.NewQuoteData()
	data.Title = "Website redesign"
	data.Items = []entity.QuoteItem{
		{ID: "itm_1", Name: "Design", Quantity: 10, UnitPrice: 100, Taxable: true},
		{ID: "itm_2", Name: "Development", Quantity: 20, UnitPrice: 150, Taxable: true},
	}
	data.DiscountType = enum.DiscountTypePercentage
	data.DiscountValue = 10
	data.TaxRate = 8
	return data
}

func TestSubmitQuote_Draft(t *testing.T) {
	quoteRepo := newFakeQuoteRepo()
	svc := NewQuoteService(quoteRepo, newFakeClientRepo(), nil)
	userID := uuid.New()
	data := testDraftData()

	quote, err := svc.SubmitQuote(context.Background(), userID, data, false)
	require.NoError(t, err)

	assert.Equal(t, enum.QuoteStatusDraft, quote.Status)
	assert.Equal(t, userID, quote.UserID)
	assert.Equal(t, "Website redesign", quote.Title)
	assert.Nil(t, quote.ClientID)

	want := pricing.Calculate(data)
	assert.Equal(t, want.Subtotal, quote.Subtotal)
	assert.Equal(t, want.Discount, quote.Discount)
	assert.Equal(t, want.Tax, quote.Tax)
	assert.Equal(t, want.Total, quote.Total)
}

func TestSubmitQuote_SendSetsStatusSent(t *testing.T) {
	svc := NewQuoteService(newFakeQuoteRepo(), newFakeClientRepo(), nil)

	quote, err := svc.SubmitQuote(context.Background(), uuid.New(), testDraftData(), true)
	require.NoError(t, err)

	assert.Equal(t, enum.QuoteStatusSent, quote.Status)
}

func TestSubmitQuote_AssignsServerQuoteNumber(t *testing.T) {
	svc := NewQuoteService(newFakeQuoteRepo(), newFakeClientRepo(), nil)
	data := testDraftData()
	data.QuoteNumber = "WORKING-LABEL"

	quote, err := svc.SubmitQuote(context.Background(), uuid.New(), data, false)
	require.NoError(t, err)

	assert.NotEqual(t, "WORKING-LABEL", quote.QuoteNumber)
	assert.True(t, strings.HasPrefix(quote.QuoteNumber, "Q-"))
	// The stored document carries the assigned number, not the draft label.
	assert.Equal(t, quote.QuoteNumber, quote.Document.QuoteNumber)
}

func TestSubmitQuote_ResolvesClient(t *testing.T) {
	clientRepo := newFakeClientRepo()
	email := "dana@example.com"
	client := &entity.Client{UserID: uuid.New(), Name: "Dana", Email: &email}
	require.NoError(t, clientRepo.Create(context.Background(), client))

	svc := NewQuoteService(newFakeQuoteRepo(), clientRepo, nil)
	data := testDraftData()
	data.ClientID = client.ID

	quote, err := svc.SubmitQuote(context.Background(), uuid.New(), data, false)
	require.NoError(t, err)
	require.NotNil(t, quote.ClientID)
	assert.Equal(t, client.ID, *quote.ClientID)
}

func TestSubmitQuote_UnknownClient(t *testing.T) {
	svc := NewQuoteService(newFakeQuoteRepo(), newFakeClientRepo(), nil)
	data := testDraftData()
	data.ClientID = uuid.New()

	_, err := svc.SubmitQuote(context.Background(), uuid.New(), data, false)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestSubmitQuote_PreservesDocument(t *testing.T) {
	svc := NewQuoteService(newFakeQuoteRepo(), newFakeClientRepo(), nil)
	data := testDraftData()
	data.ExecutiveSummary = "Full rebuild of the marketing site."
	data.Objectives = []string{"Increase conversion", "Reduce bounce rate"}

	quote, err := svc.SubmitQuote(context.Background(), uuid.New(), data, false)
	require.NoError(t, err)

	assert.Equal(t, data.ExecutiveSummary, quote.Document.ExecutiveSummary)
	assert.Equal(t, data.Objectives, quote.Document.Objectives)
	require.Len(t, quote.Document.Items, 2)
	assert.Equal(t, "Development", quote.Document.Items[1].Name)
}

func TestGetQuoteByNumber(t *testing.T) {
	svc := NewQuoteService(newFakeQuoteRepo(), newFakeClientRepo(), nil)
	quote, err := svc.SubmitQuote(context.Background(), uuid.New(), testDraftData(), false)
	require.NoError(t, err)

	found, err := svc.GetQuoteByNumber(context.Background(), quote.QuoteNumber)
	require.NoError(t, err)
	assert.Equal(t, quote.ID, found.ID)

	_, err = svc.GetQuoteByNumber(context.Background(), "Q-1999-000000")
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestGetQuote_NotFound(t *testing.T) {
	svc := NewQuoteService(newFakeQuoteRepo(), newFakeClientRepo(), nil)

	_, err := svc.GetQuote(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestUpdateQuoteStatus_DraftToSent(t *testing.T) {
	svc := NewQuoteService(newFakeQuoteRepo(), newFakeClientRepo(), nil)
	quote, err := svc.SubmitQuote(context.Background(), uuid.New(), testDraftData(), false)
	require.NoError(t, err)

	updated, err := svc.UpdateQuoteStatus(context.Background(), quote.ID, enum.QuoteStatusSent)
	require.NoError(t, err)
	assert.Equal(t, enum.QuoteStatusSent, updated.Status)
}

func TestUpdateQuoteStatus_SentToAcceptedAndDeclined(t *testing.T) {
	for _, target := range []enum.QuoteStatus{enum.QuoteStatusAccepted, enum.QuoteStatusDeclined} {
		svc := NewQuoteService(newFakeQuoteRepo(), newFakeClientRepo(), nil)
		quote, err := svc.SubmitQuote(context.Background(), uuid.New(), testDraftData(), true)
		require.NoError(t, err)

		updated, err := svc.UpdateQuoteStatus(context.Background(), quote.ID, target)
		require.NoError(t, err)
		assert.Equal(t, target, updated.Status)
	}
}

func TestUpdateQuoteStatus_RejectsInvalidTransitions(t *testing.T) {
	cases := []struct {
		send   bool
		target enum.QuoteStatus
	}{
		{false, enum.QuoteStatusAccepted},
		{false, enum.QuoteStatusDeclined},
		{true, enum.QuoteStatusDraft},
	}
	for _, tc := range cases {
		svc := NewQuoteService(newFakeQuoteRepo(), newFakeClientRepo(), nil)
		quote, err := svc.SubmitQuote(context.Background(), uuid.New(), testDraftData(), tc.send)
		require.NoError(t, err)

		_, err = svc.UpdateQuoteStatus(context.Background(), quote.ID, tc.target)
		require.Error(t, err)
		assert.Equal(t, 400, apperror.GetAppError(err).Code)
	}
}

func TestUpdateQuoteStatus_TerminalStatesAreFinal(t *testing.T) {
	svc := NewQuoteService(newFakeQuoteRepo(), newFakeClientRepo(), nil)
	quote, err := svc.SubmitQuote(context.Background(), uuid.New(), testDraftData(), true)
	require.NoError(t, err)
	_, err = svc.UpdateQuoteStatus(context.Background(), quote.ID, enum.QuoteStatusAccepted)
	require.NoError(t, err)

	_, err = svc.UpdateQuoteStatus(context.Background(), quote.ID, enum.QuoteStatusDeclined)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestDeleteQuote(t *testing.T) {
	repo := newFakeQuoteRepo()
	svc := NewQuoteService(repo, newFakeClientRepo(), nil)
	quote, err := svc.SubmitQuote(context.Background(), uuid.New(), testDraftData(), false)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteQuote(context.Background(), quote.ID))

	_, err = svc.GetQuote(context.Background(), quote.ID)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)

	err = svc.DeleteQuote(context.Background(), quote.ID)
	require.Error(t, err)
}

func TestListQuotes_FiltersByUserAndStatus(t *testing.T) {
	repo := newFakeQuoteRepo()
	svc := NewQuoteService(repo, newFakeClientRepo(), nil)
	userA := uuid.New()
	userB := uuid.New()

	_, err := svc.SubmitQuote(context.Background(), userA, testDraftData(), false)
	require.NoError(t, err)
	_, err = svc.SubmitQuote(context.Background(), userA, testDraftData(), true)
	require.NoError(t, err)
	_, err = svc.SubmitQuote(context.Background(), userB, testDraftData(), false)
	require.NoError(t, err)

	params := pagination.DefaultPagination()

	quotes, pag, err := svc.ListQuotes(context.Background(), userA, params, nil, "")
	require.NoError(t, err)
	assert.Len(t, quotes, 2)
	assert.Equal(t, int64(2), pag.Total)

	sent := enum.QuoteStatusSent
	quotes, _, err = svc.ListQuotes(context.Background(), userA, params, &sent, "")
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, enum.QuoteStatusSent, quotes[0].Status)
}

func TestSubmitQuote_ValidUntilCarriedToHeader(t *testing.T) {
	svc := NewQuoteService(newFakeQuoteRepo(), newFakeClientRepo(), nil)
	data := testDraftData()
	data.ValidUntil = time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

	quote, err := svc.SubmitQuote(context.Background(), uuid.New(), data, false)
	require.NoError(t, err)
	assert.True(t, quote.ValidUntil.Equal(data.ValidUntil))
}
