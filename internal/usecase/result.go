package usecase

import "encoding/json"

type ImportedLeadEntry struct {
	Index int    `json:"index"`
	ID    int64  `json:"id"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

type FailedLeadEntry struct {
	Index int             `json:"index"`
	Error string          `json:"error"`
	Data  json.RawMessage `json:"data"`
}

type ImportResults struct {
	Success []ImportedLeadEntry `json:"success"`
	Updated []ImportedLeadEntry `json:"updated"`
	Errors  []FailedLeadEntry   `json:"errors"`
}

type ImportLeadsOutput struct {
	Message        string        `json:"message"`
	TotalProcessed int           `json:"totalProcessed"`
	SuccessCount   int           `json:"successCount"`
	UpdatedCount   int           `json:"updatedCount"`
	ErrorCount     int           `json:"errorCount"`
	Results        ImportResults `json:"results"`
}

// resultBuilder acumula o desfecho de cada registro do lote. Invariante:
// cada índice de entrada aparece em exatamente uma das três coleções.
type resultBuilder struct {
	success []ImportedLeadEntry
	updated []ImportedLeadEntry
	failed  []FailedLeadEntry
}

func newResultBuilder(capacity int) *resultBuilder {
	return &resultBuilder{
		success: make([]ImportedLeadEntry, 0, capacity),
		updated: make([]ImportedLeadEntry, 0),
		failed:  make([]FailedLeadEntry, 0),
	}
}

func (r *resultBuilder) addCreated(index int, id int64, phone, email string) {
	r.success = append(r.success, ImportedLeadEntry{Index: index, ID: id, Phone: phone, Email: email})
}

func (r *resultBuilder) addUpdated(index int, id int64, phone, email string) {
	r.updated = append(r.updated, ImportedLeadEntry{Index: index, ID: id, Phone: phone, Email: email})
}

func (r *resultBuilder) addFailed(index int, errMsg string, raw json.RawMessage) {
	r.failed = append(r.failed, FailedLeadEntry{Index: index, Error: errMsg, Data: raw})
}

func (r *resultBuilder) finalize(message string) *ImportLeadsOutput {
	return &ImportLeadsOutput{
		Message:        message,
		TotalProcessed: len(r.success) + len(r.updated) + len(r.failed),
		SuccessCount:   len(r.success),
		UpdatedCount:   len(r.updated),
		ErrorCount:     len(r.failed),
		Results: ImportResults{
			Success: r.success,
			Updated: r.updated,
			Errors:  r.failed,
		},
	}
}
