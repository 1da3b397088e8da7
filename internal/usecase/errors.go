package usecase

const (
	CodeEmptyBatch   = "EMPTY_BATCH"
	CodeStorageError = "STORAGE_ERROR"
)

// DomainError é erro de contrato do caller (ex.: lote vazio). Vira 400.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError é falha de infraestrutura antes de qualquer registro ser
// processado (ex.: banco fora do ar). Vira 500.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}
