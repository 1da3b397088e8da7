package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AuditStore persiste o resumo de um lote para consulta posterior.
type AuditStore interface {
	SaveImportSummary(ctx context.Context, payload ImportSummaryPayload) error
}

type Worker struct {
	Channel *amqp.Channel
	Store   AuditStore
}

func NewWorker(ch *amqp.Channel, store AuditStore) *Worker {
	return &Worker{
		Channel: ch,
		Store:   store,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual é mais seguro)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload ImportSummaryPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [AUDIT] JSON inválido: %s", err)
				// Mensagem podre (malformada). Rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			if err := w.Store.SaveImportSummary(context.Background(), payload); err != nil {
				log.Printf("❌ [AUDIT] Erro ao persistir resumo do lote %s: %s", payload.BatchID, err)
				d.Nack(false, false)
			} else {
				log.Printf("✅ [AUDIT] Lote %s registrado (%d processados, %d erros)",
					payload.BatchID, payload.TotalProcessed, payload.ErrorCount)
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker de auditoria aguardando na fila '%s'", queueName)
	<-forever
}
