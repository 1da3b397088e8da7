package usecase

import (
	"strings"
	"unicode"
)

// NormalizePhone reduz um telefone cru à chave canônica de comparação:
// remove espaços, parênteses, hífens e o sinal de "+". Não valida quantidade
// de dígitos nem código de país — formatos variam demais entre as planilhas
// importadas, e assumir DDI padrão gera falsos positivos.
func NormalizePhone(raw string) string {
	if raw == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(raw))

	for _, r := range raw {
		if unicode.IsSpace(r) {
			continue
		}
		switch r {
		case '(', ')', '-', '+':
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}

// phoneIndex mapeia telefone normalizado -> id do lead. Construído uma vez
// por lote a partir do estoque atual e mutado conforme novos leads são
// criados, para que duplicatas dentro do mesmo envio também casem.
// Propriedade exclusiva do ImportLeadsUseCase; nenhum outro componente escreve.
type phoneIndex map[string]int64

func (idx phoneIndex) lookup(normalized string) (int64, bool) {
	if normalized == "" {
		return 0, false
	}
	id, ok := idx[normalized]
	return id, ok
}

func (idx phoneIndex) insert(normalized string, id int64) {
	if normalized == "" {
		return
	}
	idx[normalized] = id
}
