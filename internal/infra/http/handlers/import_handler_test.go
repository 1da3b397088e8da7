package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rafaelmp/fitcrm/internal/entity"
	"github.com/rafaelmp/fitcrm/internal/usecase"
)

// stubLeadRepo é um repositório em memória mínimo para exercitar os handlers
// com o usecase real.
type stubLeadRepo struct {
	nextID    int64
	leads     map[int64]*entity.Lead
	getAllErr error
}

func newStubLeadRepo() *stubLeadRepo {
	return &stubLeadRepo{leads: make(map[int64]*entity.Lead)}
}

func (s *stubLeadRepo) GetAll(ctx context.Context) ([]entity.Lead, error) {
	if s.getAllErr != nil {
		return nil, s.getAllErr
	}
	out := make([]entity.Lead, 0, len(s.leads))
	for i := int64(1); i <= s.nextID; i++ {
		if lead, ok := s.leads[i]; ok {
			out = append(out, *lead)
		}
	}
	return out, nil
}

func (s *stubLeadRepo) FindByID(ctx context.Context, id int64) (*entity.Lead, error) {
	lead, ok := s.leads[id]
	if !ok {
		return nil, entity.ErrLeadNotFound
	}
	c := *lead
	return &c, nil
}

func (s *stubLeadRepo) Create(ctx context.Context, lead *entity.Lead) error {
	s.nextID++
	lead.ID = s.nextID
	lead.CreatedAt = time.Now()
	lead.UpdatedAt = lead.CreatedAt
	c := *lead
	s.leads[lead.ID] = &c
	return nil
}

func (s *stubLeadRepo) Update(ctx context.Context, id int64, upd entity.LeadUpdate) (*entity.Lead, error) {
	lead, ok := s.leads[id]
	if !ok {
		return nil, entity.ErrLeadNotFound
	}
	if upd.Name != "" {
		lead.Name = upd.Name
	}
	lead.Tags = upd.Tags
	lead.UpdatedAt = time.Now()
	c := *lead
	return &c, nil
}

func newImportHandler(repo usecase.LeadRepositoryInterface) *ImportHandler {
	uc := usecase.NewImportLeadsUseCase(repo, nil, nil, usecase.SystemClock{}, 0, "")
	return NewImportHandler(uc)
}

func postImport(t *testing.T, h *ImportHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/leads/import", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	h.Handle(rr, req)
	return rr
}

func TestImportHandlerEmptyBatchReturns400(t *testing.T) {
	repo := newStubLeadRepo()
	h := newImportHandler(repo)

	for _, body := range []string{`{"leads": []}`, `{}`} {
		rr := postImport(t, h, body)

		assert.Equal(t, http.StatusBadRequest, rr.Code, "body %s", body)

		var resp map[string]string
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp["message"])
	}

	// Nenhuma leitura ou escrita pode ter acontecido
	assert.Equal(t, int64(0), repo.nextID)
}

func TestImportHandlerMalformedBodyReturns400(t *testing.T) {
	h := newImportHandler(newStubLeadRepo())

	for _, body := range []string{`not json`, `{"leads": "x"}`, `{"leads": 42}`} {
		rr := postImport(t, h, body)
		assert.Equal(t, http.StatusBadRequest, rr.Code, "body %s", body)
	}
}

func TestImportHandlerResponseShape(t *testing.T) {
	h := newImportHandler(newStubLeadRepo())

	rr := postImport(t, h, `{"leads": [
		{"name": "Ana Paula", "phone": "(11) 91111-2222", "tags": "vip;indicação"},
		{"name": "", "phone": "11933334444", "notes": "sem nome"}
	]}`)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Message        string `json:"message"`
		TotalProcessed int    `json:"totalProcessed"`
		SuccessCount   int    `json:"successCount"`
		UpdatedCount   int    `json:"updatedCount"`
		ErrorCount     int    `json:"errorCount"`
		Results        struct {
			Success []map[string]any  `json:"success"`
			Updated []map[string]any  `json:"updated"`
			Errors  []json.RawMessage `json:"errors"`
		} `json:"results"`
	}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.Message)
	assert.Equal(t, 2, resp.TotalProcessed)
	assert.Equal(t, 1, resp.SuccessCount)
	assert.Equal(t, 0, resp.UpdatedCount)
	assert.Equal(t, 1, resp.ErrorCount)
	assert.Len(t, resp.Results.Success, 1)
	assert.Len(t, resp.Results.Errors, 1)

	// O registro cru volta intacto no erro, com campos desconhecidos e tudo
	var failed struct {
		Index int             `json:"index"`
		Error string          `json:"error"`
		Data  json.RawMessage `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(resp.Results.Errors[0], &failed))
	assert.Equal(t, 1, failed.Index)
	assert.Contains(t, failed.Error, "validation failed")
	assert.Contains(t, string(failed.Data), "sem nome")
}

func TestImportHandlerStoreDownReturns500(t *testing.T) {
	repo := newStubLeadRepo()
	repo.getAllErr = errors.New("dial tcp: connection refused")

	h := newImportHandler(repo)
	rr := postImport(t, h, `{"leads": [{"name": "Ana", "phone": "11911112222"}]}`)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["message"])
	assert.NotEmpty(t, resp["details"])
}

func TestCaptureLeadUpsertsByPhone(t *testing.T) {
	repo := newStubLeadRepo()
	uc := usecase.NewImportLeadsUseCase(repo, nil, nil, usecase.SystemClock{}, 0, "")
	h := NewLeadHandler(uc, repo)

	capture := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/leads", bytes.NewBufferString(body))
		rr := httptest.NewRecorder()
		h.CaptureLead(rr, req)
		return rr
	}

	first := capture(`{"name": "Ana Paula", "phone": "(11) 91111-2222"}`)
	assert.Equal(t, http.StatusOK, first.Code)

	var firstResp CaptureLeadResponse
	assert.NoError(t, json.Unmarshal(first.Body.Bytes(), &firstResp))
	assert.True(t, firstResp.Success)
	assert.False(t, firstResp.Updated)

	// Mesmo telefone com outra máscara: atualiza em vez de duplicar
	second := capture(`{"name": "Ana P. Silva", "phone": "11 91111 2222"}`)
	assert.Equal(t, http.StatusOK, second.Code)

	var secondResp CaptureLeadResponse
	assert.NoError(t, json.Unmarshal(second.Body.Bytes(), &secondResp))
	assert.True(t, secondResp.Updated)
	assert.Equal(t, firstResp.ID, secondResp.ID)
}

func TestCaptureLeadInvalidRecordReturns422(t *testing.T) {
	repo := newStubLeadRepo()
	uc := usecase.NewImportLeadsUseCase(repo, nil, nil, usecase.SystemClock{}, 0, "")
	h := NewLeadHandler(uc, repo)

	req := httptest.NewRequest(http.MethodPost, "/leads", bytes.NewBufferString(`{"name": "Sem Fone"}`))
	rr := httptest.NewRecorder()
	h.CaptureLead(rr, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	var resp CaptureLeadResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "phone")
}
