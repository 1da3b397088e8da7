package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var nonDigits = regexp.MustCompile(`\D`)

var knownStatuses = map[string]bool{
	"NOVO":       true,
	"CONTATADO":  true,
	"AGENDADO":   true,
	"CONVERTIDO": true,
	"FRIO":       true,
}

// ValidateCandidate valida um registro cru antes da criação de um lead novo.
// Leads já existentes (caminho de update) não passam por aqui.
func ValidateCandidate(c CandidateRecord) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(c.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	} else if len(strings.TrimSpace(c.Name)) < 2 {
		errors = append(errors, ValidationError{"name", "must have at least 2 characters"})
	} else if len(c.Name) > 200 {
		errors = append(errors, ValidationError{"name", "must not exceed 200 characters"})
	}

	if strings.TrimSpace(c.Phone) == "" {
		errors = append(errors, ValidationError{"phone", "is required"})
	} else if !isValidPhoneNumber(c.Phone) {
		errors = append(errors, ValidationError{"phone", "must be a valid phone number"})
	}

	if strings.TrimSpace(c.Email) != "" {
		if _, err := mail.ParseAddress(strings.TrimSpace(c.Email)); err != nil {
			errors = append(errors, ValidationError{"email", "is invalid"})
		}
	}

	if s := strings.TrimSpace(c.Status); s != "" && !knownStatuses[strings.ToUpper(s)] {
		errors = append(errors, ValidationError{"status", "must be NOVO, CONTATADO, AGENDADO, CONVERTIDO or FRIO"})
	}

	return errors
}

func isValidPhoneNumber(phone string) bool {
	cleaned := nonDigits.ReplaceAllString(phone, "")

	// 10-11 dígitos nacionais, 12-13 com DDI 55
	return len(cleaned) >= 10 && len(cleaned) <= 13
}

func formatValidationErrors(errs []ValidationError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Field+" ("+e.Message+")")
	}
	return "validation failed: " + strings.Join(parts, ", ")
}
