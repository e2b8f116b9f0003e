package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proposalforge/agency-api/internal/application/catalog"
	"github.com/proposalforge/agency-api/internal/application/draft"
	"github.com/proposalforge/agency-api/internal/application/render"
	"github.com/proposalforge/agency-api/internal/application/service"
	"github.com/proposalforge/agency-api/internal/domain/entity"
	"github.com/proposalforge/agency-api/internal/domain/enum"
	"github.com/proposalforge/agency-api/internal/domain/pricing"
	"github.com/proposalforge/agency-api/pkg/pagination"
)

type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

type stubQuoteRepo struct {
	quotes map[uuid.UUID]*entity.Quote
}

func (r *stubQuoteRepo) Create(_ context.Context, quote *entity.Quote) error {
	if quote.ID == uuid.Nil {
		quote.ID = uuid.New()
	}
	stored := *quote
	r.quotes[quote.ID] = &stored
	return nil
}

func (r *stubQuoteRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Quote, error) {
	quote, ok := r.quotes[id]
	if !ok {
		return nil, nil
	}
	copied := *quote
	return &copied, nil
}

func (r *stubQuoteRepo) GetByQuoteNumber(_ context.Context, _ string) (*entity.Quote, error) {
	return nil, nil
}

func (r *stubQuoteRepo) Update(_ context.Context, quote *entity.Quote) error {
	stored := *quote
	r.quotes[quote.ID] = &stored
	return nil
}

func (r *stubQuoteRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enum.QuoteStatus) error {
	if quote, ok := r.quotes[id]; ok {
		quote.Status = status
	}
	return nil
}

func (r *stubQuoteRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.quotes, id)
	return nil
}

func (r *stubQuoteRepo) List(_ context.Context, _ uuid.UUID, _ *pagination.PaginationParams, _ *enum.QuoteStatus, _ string) ([]entity.Quote, int64, error) {
	return nil, 0, nil
}

type stubClientRepo struct {
	clients map[uuid.UUID]*entity.Client
}

func (r *stubClientRepo) Create(_ context.Context, client *entity.Client) error {
	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}
	r.clients[client.ID] = client
	return nil
}

func (r *stubClientRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Client, error) {
	return r.clients[id], nil
}

func (r *stubClientRepo) GetByEmail(_ context.Context, _ string) (*entity.Client, error) {
	return nil, nil
}

func (r *stubClientRepo) Update(_ context.Context, client *entity.Client) error {
	r.clients[client.ID] = client
	return nil
}

func (r *stubClientRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.clients, id)
	return nil
}

func (r *stubClientRepo) List(_ context.Context, _ uuid.UUID, _ *pagination.PaginationParams, _ string) ([]entity.Client, int64, error) {
	return nil, 0, nil
}

type wizardFixture struct {
	router    *gin.Engine
	store     *memStore
	quoteRepo *stubQuoteRepo
	userID    uuid.UUID
}

func newWizardFixture(t *testing.T) *wizardFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newMemStore()
	quoteRepo := &stubQuoteRepo{quotes: map[uuid.UUID]*entity.Quote{}}
	clientRepo := &stubClientRepo{clients: map[uuid.UUID]*entity.Client{}}
	session := draft.NewSession(store, time.Hour)
	t.Cleanup(session.Close)

	quoteService := service.NewQuoteService(quoteRepo, clientRepo, nil)
	h := NewDraftHandler(session, catalog.New(), render.DefaultConfig(), quoteService, clientRepo)

	userID := uuid.New()
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
	})

	d := router.Group("/drafts/current")
	d.GET("", h.Get)
	d.PUT("", h.Replace)
	d.DELETE("", h.Clear)
	d.POST("/save", h.Save)
	d.POST("/steps/next", h.Next)
	d.POST("/steps/prev", h.Prev)
	d.POST("/steps/goto", h.GoTo)
	d.POST("/items", h.AddItem)
	d.PATCH("/items/:id", h.UpdateItem)
	d.DELETE("/items/:id", h.RemoveItem)
	d.POST("/milestones", h.AddMilestone)
	d.POST("/payment-terms", h.AddPaymentTerm)
	d.POST("/scope/:field", h.AppendScope)
	d.PUT("/scope/:field", h.SetScope)
	d.DELETE("/scope/:field", h.RemoveScope)
	d.POST("/templates/pricing", h.ApplyPricingTemplate)
	d.POST("/templates/milestones", h.ApplyMilestoneTemplate)
	d.POST("/templates/payments", h.ApplyPaymentTemplate)
	d.GET("/preview", h.Preview)
	d.GET("/pdf", h.PDF)
	d.POST("/submit", h.Submit)
	router.GET("/templates", h.ListTemplates)

	return &wizardFixture{router: router, store: store, quoteRepo: quoteRepo, userID: userID}
}

func (f *wizardFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type stateBody struct {
	Draft     entity.QuoteData  `json:"draft"`
	Totals    pricing.Breakdown `json:"totals"`
	Step      int               `json:"step"`
	StepName  string            `json:"step_name"`
	Recovered bool              `json:"recovered"`
}

func decodeState(t *testing.T, w *httptest.ResponseRecorder) stateBody {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.True(t, env.Success, env.Message)
	var st stateBody
	require.NoError(t, json.Unmarshal(env.Data, &st))
	return st
}

func TestDraftGet_FreshState(t *testing.T) {
	f := newWizardFixture(t)

	w := f.do(t, http.MethodGet, "/drafts/current", nil)
	require.Equal(t, http.StatusOK, w.Code)

	st := decodeState(t, w)
	assert.Equal(t, 1, st.Step)
	assert.False(t, st.Recovered)
	assert.NotEmpty(t, st.Draft.QuoteNumber)
	assert.Zero(t, st.Totals.Total)
}

func TestDraftItems_AddUpdateRemove(t *testing.T) {
	f := newWizardFixture(t)

	st := decodeState(t, f.do(t, http.MethodPost, "/drafts/current/items", nil))
	require.Len(t, st.Draft.Items, 1)
	itemID := st.Draft.Items[0].ID

	f.do(t, http.MethodPatch, "/drafts/current/items/"+itemID, gin.H{"field": "unit_price", "value": 500.0})
	st = decodeState(t, f.do(t, http.MethodPatch, "/drafts/current/items/"+itemID, gin.H{"field": "quantity", "value": 2.0}))
	assert.Equal(t, 500.0, st.Draft.Items[0].UnitPrice)
	assert.Equal(t, 2.0, st.Draft.Items[0].Quantity)
	assert.Equal(t, 1000.0, st.Totals.Subtotal)

	st = decodeState(t, f.do(t, http.MethodDelete, "/drafts/current/items/"+itemID, nil))
	assert.Empty(t, st.Draft.Items)
	assert.Zero(t, st.Totals.Subtotal)
}

func TestDraftSteps_Navigation(t *testing.T) {
	f := newWizardFixture(t)

	st := decodeState(t, f.do(t, http.MethodPost, "/drafts/current/steps/next", nil))
	assert.Equal(t, 2, st.Step)

	st = decodeState(t, f.do(t, http.MethodPost, "/drafts/current/steps/prev", nil))
	assert.Equal(t, 1, st.Step)

	st = decodeState(t, f.do(t, http.MethodPost, "/drafts/current/steps/goto", gin.H{"step": 5}))
	assert.Equal(t, 5, st.Step)

	// Prev never drops below the first step.
	f.do(t, http.MethodPost, "/drafts/current/steps/goto", gin.H{"step": 1})
	st = decodeState(t, f.do(t, http.MethodPost, "/drafts/current/steps/prev", nil))
	assert.Equal(t, 1, st.Step)
}

func TestDraftGoTo_RejectsOutOfRange(t *testing.T) {
	f := newWizardFixture(t)

	w := f.do(t, http.MethodPost, "/drafts/current/steps/goto", gin.H{"step": 9})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDraftScope_AppendSetRemove(t *testing.T) {
	f := newWizardFixture(t)

	st := decodeState(t, f.do(t, http.MethodPost, "/drafts/current/scope/objectives", gin.H{"value": "Launch the new site"}))
	require.Equal(t, []string{"Launch the new site"}, st.Draft.Objectives)

	st = decodeState(t, f.do(t, http.MethodPut, "/drafts/current/scope/objectives", gin.H{"index": 0, "value": "Launch on time"}))
	require.Equal(t, []string{"Launch on time"}, st.Draft.Objectives)

	st = decodeState(t, f.do(t, http.MethodDelete, "/drafts/current/scope/objectives", gin.H{"index": 0}))
	assert.Empty(t, st.Draft.Objectives)
}

func TestDraftScope_UnknownFieldRejected(t *testing.T) {
	f := newWizardFixture(t)

	w := f.do(t, http.MethodPost, "/drafts/current/scope/budget", gin.H{"value": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListTemplates(t *testing.T) {
	f := newWizardFixture(t)

	w := f.do(t, http.MethodGet, "/templates", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var data struct {
		Pricing    []catalog.PricingTemplate     `json:"pricing"`
		Milestones []catalog.MilestoneTemplate   `json:"milestones"`
		Payments   []catalog.PaymentTermTemplate `json:"payments"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.Pricing)
	assert.NotEmpty(t, data.Milestones)
	assert.NotEmpty(t, data.Payments)
}

func TestApplyPricingTemplate(t *testing.T) {
	f := newWizardFixture(t)

	st := decodeState(t, f.do(t, http.MethodPost, "/drafts/current/templates/pricing", gin.H{"template_id": "web-app-standard"}))
	assert.NotEmpty(t, st.Draft.Items)
	assert.Greater(t, st.Totals.Subtotal, 0.0)
}

func TestApplyTemplate_UnknownID(t *testing.T) {
	f := newWizardFixture(t)

	w := f.do(t, http.MethodPost, "/drafts/current/templates/pricing", gin.H{"template_id": "no-such-template"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestApplyMilestoneAndPaymentTemplates(t *testing.T) {
	f := newWizardFixture(t)

	st := decodeState(t, f.do(t, http.MethodPost, "/drafts/current/templates/milestones", gin.H{"template_id": "four-phase-delivery"}))
	assert.NotEmpty(t, st.Draft.Milestones)

	st = decodeState(t, f.do(t, http.MethodPost, "/drafts/current/templates/payments", gin.H{"template_id": "fifty-fifty"}))
	require.Len(t, st.Draft.PaymentTerms, 2)
}

func TestDraftSave_WritesRecoverySlot(t *testing.T) {
	f := newWizardFixture(t)

	f.do(t, http.MethodPost, "/drafts/current/items", nil)
	w := f.do(t, http.MethodPost, "/drafts/current/save", nil)
	require.Equal(t, http.StatusOK, w.Code)

	raw, err := f.store.Get(context.Background(), draft.RecoveryKey)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	var saved entity.QuoteData
	require.NoError(t, json.Unmarshal(raw, &saved))
	assert.Len(t, saved.Items, 1)
}

func TestDraftReplace(t *testing.T) {
	f := newWizardFixture(t)

	data := draft.NewQuoteData()
	data.Title = "Replaced draft"
	st := decodeState(t, f.do(t, http.MethodPut, "/drafts/current", data))
	assert.Equal(t, "Replaced draft", st.Draft.Title)
}

func TestDraftPreview(t *testing.T) {
	f := newWizardFixture(t)
	f.do(t, http.MethodPost, "/drafts/current/templates/pricing", gin.H{"template_id": "web-app-standard"})

	w := f.do(t, http.MethodGet, "/drafts/current/preview", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var doc render.Document
	require.NoError(t, json.Unmarshal(env.Data, &doc))
	assert.Equal(t, "Proposal Forge", doc.Cover.CompanyName)
	assert.NotEmpty(t, doc.Pricing.Rows)
	assert.True(t, strings.HasPrefix(doc.Pricing.Total, "$"))
}

func TestDraftPDF(t *testing.T) {
	f := newWizardFixture(t)

	w := f.do(t, http.MethodGet, "/drafts/current/pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".pdf")
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
}

func TestDraftSubmit_StoresQuoteAndClearsDraft(t *testing.T) {
	f := newWizardFixture(t)

	f.do(t, http.MethodPost, "/drafts/current/templates/pricing", gin.H{"template_id": "web-app-standard"})
	f.do(t, http.MethodPost, "/drafts/current/save", nil)

	w := f.do(t, http.MethodPost, "/drafts/current/submit", gin.H{"send": false})
	require.Equal(t, http.StatusCreated, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var quote entity.Quote
	require.NoError(t, json.Unmarshal(env.Data, &quote))
	assert.Equal(t, f.userID, quote.UserID)
	assert.Equal(t, enum.QuoteStatusDraft, quote.Status)
	assert.True(t, strings.HasPrefix(quote.QuoteNumber, "Q-"))
	require.Len(t, f.quoteRepo.quotes, 1)

	// The recovery slot is gone and the next fetch is a fresh draft.
	raw, err := f.store.Get(context.Background(), draft.RecoveryKey)
	require.NoError(t, err)
	assert.Empty(t, raw)

	st := decodeState(t, f.do(t, http.MethodGet, "/drafts/current", nil))
	assert.Empty(t, st.Draft.Items)
	assert.Equal(t, 1, st.Step)
}

func TestDraftClear(t *testing.T) {
	f := newWizardFixture(t)

	f.do(t, http.MethodPost, "/drafts/current/items", nil)
	f.do(t, http.MethodPost, "/drafts/current/save", nil)

	st := decodeState(t, f.do(t, http.MethodDelete, "/drafts/current", nil))
	assert.Empty(t, st.Draft.Items)

	raw, err := f.store.Get(context.Background(), draft.RecoveryKey)
	require.NoError(t, err)
	assert.Empty(t, raw)
}
