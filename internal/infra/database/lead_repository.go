package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/rafaelmp/fitcrm/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `
	id, name, phone, COALESCE(email, ''), COALESCE(source, ''), status,
	COALESCE(campaign, ''), COALESCE(state, ''), tags, entry_date,
	COALESCE(notes, ''), created_at, updated_at
`

func scanLead(row interface{ Scan(...any) error }) (*entity.Lead, error) {
	var lead entity.Lead
	err := row.Scan(
		&lead.ID,
		&lead.Name,
		&lead.Phone,
		&lead.Email,
		&lead.Source,
		&lead.Status,
		&lead.Campaign,
		&lead.State,
		pq.Array(&lead.Tags),
		&lead.EntryDate,
		&lead.Notes,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if lead.Tags == nil {
		lead.Tags = []string{}
	}
	return &lead, nil
}

// GetAll carrega o estoque inteiro de leads. É a leitura dominante da
// importação em lote; se a latência apertar, o caminho é um índice no banco
// por telefone normalizado, mantendo a mesma semântica de matching.
func (r *LeadRepository) GetAll(ctx context.Context) ([]entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads ORDER BY id`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *lead)
	}

	return leads, rows.Err()
}

func (r *LeadRepository) FindByID(ctx context.Context, id int64) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrLeadNotFound
	}
	return lead, err
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (name, phone, email, source, status, campaign, state, tags, entry_date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	if lead.Tags == nil {
		lead.Tags = []string{}
	}

	return r.DB.QueryRowContext(ctx, query,
		lead.Name,
		lead.Phone,
		nullString(lead.Email),
		nullString(lead.Source),
		lead.Status,
		nullString(lead.Campaign),
		nullString(lead.State),
		pq.Array(lead.Tags),
		lead.EntryDate,
		nullString(lead.Notes),
	).Scan(&lead.ID, &lead.CreatedAt, &lead.UpdatedAt)
}

// Update aplica uma atualização parcial: campo vazio mantém o valor atual,
// tags substituem o conjunto inteiro (o merge acontece no usecase).
func (r *LeadRepository) Update(ctx context.Context, id int64, upd entity.LeadUpdate) (*entity.Lead, error) {
	query := `
		UPDATE leads SET
			name     = COALESCE($2, name),
			email    = COALESCE($3, email),
			source   = COALESCE($4, source),
			status   = COALESCE($5, status),
			campaign = COALESCE($6, campaign),
			state    = COALESCE($7, state),
			notes    = COALESCE($8, notes),
			tags     = $9,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + leadColumns

	tags := upd.Tags
	if tags == nil {
		tags = []string{}
	}

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query,
		id,
		nullString(upd.Name),
		nullString(upd.Email),
		nullString(upd.Source),
		nullString(upd.Status),
		nullString(upd.Campaign),
		nullString(upd.State),
		nullString(upd.Notes),
		pq.Array(tags),
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrLeadNotFound
	}
	return lead, err
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
