package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rafaelmp/fitcrm/internal/entity"
	"github.com/rafaelmp/fitcrm/internal/infra/queue"
)

// DefaultChunkSize limita memória e dá pontos de progresso em uploads
// grandes. Não afeta o matching: o registro casa igual em qualquer chunk.
const DefaultChunkSize = 250

type ImportLeadsUseCase struct {
	Repo      LeadRepositoryInterface
	Audit     AuditPublisherInterface
	Mailer    ReportMailerInterface
	Clock     Clock
	ChunkSize int
	ReportTo  string
}

func NewImportLeadsUseCase(
	repo LeadRepositoryInterface,
	audit AuditPublisherInterface,
	mailer ReportMailerInterface,
	clock Clock,
	chunkSize int,
	reportTo string,
) *ImportLeadsUseCase {
	if clock == nil {
		clock = SystemClock{}
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &ImportLeadsUseCase{
		Repo:      repo,
		Audit:     audit,
		Mailer:    mailer,
		Clock:     clock,
		ChunkSize: chunkSize,
		ReportTo:  reportTo,
	}
}

// Execute processa um lote de registros candidatos: casa cada um contra os
// leads existentes pelo telefone normalizado, atualiza os que casam (unindo
// tags) e valida+cria os demais. Falha de um registro nunca aborta o lote;
// cada índice de entrada termina em exatamente uma das coleções do resultado.
func (uc *ImportLeadsUseCase) Execute(ctx context.Context, input ImportLeadsInput) (*ImportLeadsOutput, error) {
	if len(input.Leads) == 0 {
		return nil, &DomainError{
			Code:    CodeEmptyBatch,
			Message: "a lista de leads está vazia ou ausente",
		}
	}

	batchID := uuid.New().String()
	startedAt := uc.Clock.Now()

	index, err := uc.buildPhoneIndex(ctx)
	if err != nil {
		return nil, &TechnicalError{
			Code:    CodeStorageError,
			Message: "falha ao carregar leads existentes: " + err.Error(),
		}
	}

	total := len(input.Leads)
	slog.Info("importação de leads iniciada",
		"batch_id", batchID, "registros", total, "indexados", len(index))

	res := newResultBuilder(total)

	for start := 0; start < total; start += uc.ChunkSize {
		end := min(start+uc.ChunkSize, total)

		// Ordem estrita de entrada: registros posteriores podem casar com
		// leads criados neste mesmo lote.
		for i := start; i < end; i++ {
			uc.processRecord(ctx, i, input.Leads[i], index, res)
		}

		slog.Info("importação de leads: progresso",
			"batch_id", batchID, "processados", end, "total", total)
	}

	out := res.finalize("Importação concluída")

	slog.Info("importação de leads concluída",
		"batch_id", batchID,
		"criados", out.SuccessCount,
		"atualizados", out.UpdatedCount,
		"erros", out.ErrorCount,
		"duração", uc.Clock.Now().Sub(startedAt).String())

	uc.publishAudit(ctx, batchID, startedAt, out)
	uc.sendReport(batchID, out)

	return out, nil
}

// buildPhoneIndex lê o estoque inteiro de leads uma vez por lote. Se dois
// leads pré-existentes normalizam para o mesmo telefone (defeito de dados
// antigo), o último da iteração vence.
func (uc *ImportLeadsUseCase) buildPhoneIndex(ctx context.Context) (phoneIndex, error) {
	leads, err := uc.Repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	index := make(phoneIndex, len(leads))
	for _, lead := range leads {
		index.insert(NormalizePhone(lead.Phone), lead.ID)
	}
	return index, nil
}

func (uc *ImportLeadsUseCase) processRecord(ctx context.Context, i int, rec CandidateRecord, index phoneIndex, res *resultBuilder) {
	key := NormalizePhone(rec.Phone)

	if id, ok := index.lookup(key); ok {
		uc.mergeAndUpdate(ctx, i, rec, id, res)
		return
	}

	uc.validateAndCreate(ctx, i, rec, key, index, res)
}

func (uc *ImportLeadsUseCase) mergeAndUpdate(ctx context.Context, i int, rec CandidateRecord, id int64, res *resultBuilder) {
	existing, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		// Índice aponta para lead que não carrega: bug ou corrida no
		// armazenamento, não problema de validação.
		msg := fmt.Sprintf("index inconsistency: lead %d could not be loaded: %v", id, err)
		if errors.Is(err, entity.ErrLeadNotFound) {
			msg = fmt.Sprintf("index inconsistency: lead %d no longer exists", id)
		}
		slog.Error("inconsistência entre índice e armazenamento",
			"lead_id", id, "registro", i, "err", err)
		res.addFailed(i, msg, rec.Raw)
		return
	}

	upd := entity.LeadUpdate{
		Name:     strings.TrimSpace(rec.Name),
		Email:    strings.TrimSpace(rec.Email),
		Source:   strings.TrimSpace(rec.Source),
		Status:   normalizeStatus(rec.Status),
		Campaign: strings.TrimSpace(rec.Campaign),
		State:    strings.TrimSpace(rec.State),
		Notes:    rec.Notes,
		Tags:     MergeTags(existing.Tags, rec.Tags),
	}

	updated, err := uc.Repo.Update(ctx, id, upd)
	if err != nil {
		res.addFailed(i, "storage error: "+err.Error(), rec.Raw)
		return
	}

	res.addUpdated(i, updated.ID, updated.Phone, updated.Email)
}

func (uc *ImportLeadsUseCase) validateAndCreate(ctx context.Context, i int, rec CandidateRecord, key string, index phoneIndex, res *resultBuilder) {
	if errs := ValidateCandidate(rec); len(errs) > 0 {
		res.addFailed(i, formatValidationErrors(errs), rec.Raw)
		return
	}

	status := normalizeStatus(rec.Status)
	if status == "" {
		status = "NOVO"
	}

	lead := &entity.Lead{
		Name:      strings.TrimSpace(rec.Name),
		Phone:     strings.TrimSpace(rec.Phone),
		Email:     strings.TrimSpace(rec.Email),
		Source:    strings.TrimSpace(rec.Source),
		Status:    status,
		Campaign:  strings.TrimSpace(rec.Campaign),
		State:     strings.TrimSpace(rec.State),
		Tags:      NormalizeTags(rec.Tags),
		EntryDate: uc.coerceEntryDate(rec.EntryDate),
		Notes:     rec.Notes,
	}

	if err := uc.Repo.Create(ctx, lead); err != nil {
		res.addFailed(i, "storage error: "+err.Error(), rec.Raw)
		return
	}

	// Registros posteriores do mesmo lote casam contra este lead.
	index.insert(key, lead.ID)

	res.addCreated(i, lead.ID, lead.Phone, lead.Email)
}

// coerceEntryDate aceita DD/MM/AAAA, data ISO ou RFC3339. Data inválida não
// derruba o registro: cai para "agora". Trade-off deliberado — um lead válido
// vale mais que a precisão da data de entrada.
func (uc *ImportLeadsUseCase) coerceEntryDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uc.Clock.Now()
	}

	for _, layout := range []string{"02/01/2006", "2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}

	return uc.Clock.Now()
}

func normalizeStatus(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// publishAudit manda o resumo do lote para a fila de auditoria. Falha aqui
// nunca falha a importação.
func (uc *ImportLeadsUseCase) publishAudit(ctx context.Context, batchID string, startedAt time.Time, out *ImportLeadsOutput) {
	if uc.Audit == nil {
		return
	}

	payload := queue.ImportSummaryPayload{
		BatchID:        batchID,
		TotalProcessed: out.TotalProcessed,
		SuccessCount:   out.SuccessCount,
		UpdatedCount:   out.UpdatedCount,
		ErrorCount:     out.ErrorCount,
		StartedAt:      startedAt,
		FinishedAt:     uc.Clock.Now(),
	}
	for _, f := range out.Results.Errors {
		payload.Failures = append(payload.Failures, queue.ImportFailure{
			Index: f.Index,
			Error: f.Error,
		})
	}

	if err := uc.Audit.PublishImportSummary(ctx, payload); err != nil {
		slog.Warn("auditoria do lote não publicada", "batch_id", batchID, "err", err)
	}
}

func (uc *ImportLeadsUseCase) sendReport(batchID string, out *ImportLeadsOutput) {
	if uc.Mailer == nil || uc.ReportTo == "" {
		return
	}

	go func() {
		err := uc.Mailer.SendImportReport(uc.ReportTo, batchID,
			out.TotalProcessed, out.SuccessCount, out.UpdatedCount, out.ErrorCount)
		if err != nil {
			log.Printf("⚠️ Email de relatório da importação não enviado: %v", err)
		}
	}()
}
