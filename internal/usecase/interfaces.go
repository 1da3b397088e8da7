package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rafaelmp/fitcrm/internal/entity"
	"github.com/rafaelmp/fitcrm/internal/infra/queue"
)

// CandidateRecord é um registro cru enviado pelo caller (ex.: linha de
// planilha). Sem identificador; vive apenas durante um lote.
type CandidateRecord struct {
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	Email     string  `json:"email"`
	Source    string  `json:"source"`
	Status    string  `json:"status"`
	Campaign  string  `json:"campaign"`
	State     string  `json:"state"`
	Tags      TagList `json:"tags"`
	EntryDate string  `json:"entryDate"`
	Notes     string  `json:"notes"`

	// Raw guarda os bytes originais do registro, devolvidos intactos no
	// relatório de erros para o caller corrigir e reenviar.
	Raw json.RawMessage `json:"-"`
}

func (c *CandidateRecord) UnmarshalJSON(data []byte) error {
	type alias CandidateRecord
	var a alias

	// Registro malformado (não-objeto, tipos errados) não derruba o decode
	// do lote inteiro: fica com campos zerados e cai na validação.
	_ = json.Unmarshal(data, &a)

	*c = CandidateRecord(a)
	c.Raw = append(json.RawMessage(nil), data...)
	return nil
}

type ImportLeadsInput struct {
	Leads []CandidateRecord `json:"leads"`
}

type LeadRepositoryInterface interface {
	GetAll(ctx context.Context) ([]entity.Lead, error)
	FindByID(ctx context.Context, id int64) (*entity.Lead, error)
	Create(ctx context.Context, lead *entity.Lead) error
	Update(ctx context.Context, id int64, upd entity.LeadUpdate) (*entity.Lead, error)
}

type AuditPublisherInterface interface {
	PublishImportSummary(ctx context.Context, payload queue.ImportSummaryPayload) error
}

type ReportMailerInterface interface {
	SendImportReport(to, batchID string, totalProcessed, created, updated, failed int) error
}

// Clock abstrai "agora" para o fallback de data de entrada ser testável.
type Clock interface {
	Now() time.Time
}
