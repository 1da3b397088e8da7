package entity

import (
	"errors"
	"time"
)

var ErrLeadNotFound = errors.New("lead não encontrado")

type Lead struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	Source    string    `json:"source,omitempty"`
	Status    string    `json:"status"` // NOVO, CONTATADO, AGENDADO, CONVERTIDO, FRIO
	Campaign  string    `json:"campaign,omitempty"`
	State     string    `json:"state,omitempty"`
	Tags      []string  `json:"tags"`
	EntryDate time.Time `json:"entry_date"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LeadUpdate carrega os campos de uma atualização parcial. String vazia
// significa "mantém o valor atual" (o repositório resolve via COALESCE).
type LeadUpdate struct {
	Name     string
	Email    string
	Source   string
	Status   string
	Campaign string
	State    string
	Notes    string
	Tags     []string
}
