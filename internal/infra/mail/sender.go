package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"
)

func NewEmailSender(host string, port int, user, password string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
	}
}

const importReportTemplate = `
<h2>Relatório de importação de leads</h2>
<p>Lote <strong>{{.BatchID}}</strong> concluído.</p>
<ul>
	<li>Total processado: {{.TotalProcessed}}</li>
	<li>Leads criados: {{.Created}}</li>
	<li>Leads atualizados: {{.Updated}}</li>
	<li>Registros com erro: {{.Failed}}</li>
</ul>
{{if gt .Failed 0}}<p>Os registros com erro voltaram na resposta da importação e podem ser corrigidos e reenviados.</p>{{end}}
`

var reportTmpl = template.Must(template.New("import-report").Parse(importReportTemplate))

// SendImportReport envia o resumo de um lote para o operador. Chamado em
// goroutine após a importação; falha aqui só gera log, nunca falha o lote.
func (s *EmailSender) SendImportReport(to, batchID string, totalProcessed, created, updated, failed int) error {
	data := ImportReportData{
		BatchID:        batchID,
		TotalProcessed: totalProcessed,
		Created:        created,
		Updated:        updated,
		Failed:         failed,
	}

	var body bytes.Buffer
	if err := reportTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("erro ao processar template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", "nao-responda@fitcrm.com.br")
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Importação de leads concluída: %d processados, %d erros", totalProcessed, failed))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}
