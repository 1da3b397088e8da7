package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rafaelmp/fitcrm/internal/infra/http/middleware"
	"github.com/rafaelmp/fitcrm/internal/usecase"
)

type ImportHandler struct {
	UseCase *usecase.ImportLeadsUseCase
}

func NewImportHandler(uc *usecase.ImportLeadsUseCase) *ImportHandler {
	return &ImportHandler{UseCase: uc}
}

type importErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Handle recebe { "leads": [...] } e responde o desfecho registro a registro.
// 400 só para erro de contrato (corpo malformado ou lote vazio); erro de
// registro individual nunca derruba a requisição.
func (h *ImportHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var input usecase.ImportLeadsInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(importErrorResponse{
			Message: "JSON inválido: o corpo deve ser { \"leads\": [...] }",
		})
		return
	}

	start := time.Now()
	output, err := h.UseCase.Execute(r.Context(), input)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		if usecase.IsDomainError(err) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(importErrorResponse{Message: err.Error()})
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(importErrorResponse{
			Message: "falha ao processar o lote de leads",
			Details: err.Error(),
		})
		return
	}

	middleware.RecordImportBatch(time.Since(start).Seconds())
	middleware.RecordImportedLeads("created", output.SuccessCount)
	middleware.RecordImportedLeads("updated", output.UpdatedCount)
	middleware.RecordImportedLeads("failed", output.ErrorCount)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(output)
}
