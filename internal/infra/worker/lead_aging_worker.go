package worker

import (
	"context"
	"database/sql"
	"log"
	"time"
)

// LeadAgingWorker esfria leads parados: quem entrou como NOVO e nunca foi
// contatado dentro da janela vira FRIO, para sair da fila ativa do time.
type LeadAgingWorker struct {
	db           *sql.DB
	tickInterval time.Duration
}

func NewLeadAgingWorker(db *sql.DB) *LeadAgingWorker {
	return &LeadAgingWorker{
		db:           db,
		tickInterval: 1 * time.Hour,
	}
}

func (w *LeadAgingWorker) Start(ctx context.Context) {
	log.Println("🕒 Lead Aging Worker iniciado (janela de 30 dias)")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.coolDownStaleLeads(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Lead Aging Worker encerrado")
			return
		case <-ticker.C:
			w.coolDownStaleLeads(ctx)
		}
	}
}

func (w *LeadAgingWorker) coolDownStaleLeads(ctx context.Context) {
	query := `
		UPDATE leads
		SET
			status = 'FRIO',
			updated_at = NOW()
		WHERE
			status = 'NOVO'
			AND entry_date < NOW() - INTERVAL '30 days'
		RETURNING id, name, entry_date
	`

	rows, err := w.db.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ Erro ao buscar leads parados: %v", err)
		return
	}
	defer rows.Close()

	cooled := 0
	for rows.Next() {
		var id int64
		var name string
		var entryDate time.Time

		if err := rows.Scan(&id, &name, &entryDate); err != nil {
			log.Printf("⚠️ Erro ao escanear lead parado: %v", err)
			continue
		}

		log.Printf("🧊 Lead esfriado: id=%d name=%q parado desde %s",
			id, name, entryDate.Format("02/01/2006"))
		cooled++
	}

	if cooled > 0 {
		log.Printf("✅ %d lead(s) marcados como FRIO", cooled)
	}
}
