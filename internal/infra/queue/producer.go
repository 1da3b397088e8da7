package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

type ImportFailure struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

// ImportSummaryPayload é o desfecho de um lote de importação, publicado para
// o sink de auditoria consumir.
type ImportSummaryPayload struct {
	BatchID        string          `json:"batch_id"`
	TotalProcessed int             `json:"total_processed"`
	SuccessCount   int             `json:"success_count"`
	UpdatedCount   int             `json:"updated_count"`
	ErrorCount     int             `json:"error_count"`
	Failures       []ImportFailure `json:"failures,omitempty"`
	StartedAt      time.Time       `json:"started_at"`
	FinishedAt     time.Time       `json:"finished_at"`
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishImportSummary(ctx context.Context, payload ImportSummaryPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %v", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName, // ex.leads
		RoutingKey,   // k.import.audit
		false,        // Mandatory
		false,        // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // Mensagem salva no disco
		},
	)
	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %v", err)
	}

	return nil
}
