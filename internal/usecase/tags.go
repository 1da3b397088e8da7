package usecase

import (
	"encoding/json"
	"strings"
)

// TagList aceita tanto um array JSON de strings quanto uma string única
// delimitada por vírgula ou ponto-e-vírgula (formato comum em planilhas).
type TagList []string

func (t *TagList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = list
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*t = splitTags(single)
	return nil
}

func splitTags(s string) []string {
	s = strings.ReplaceAll(s, ";", ",")
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// NormalizeTags descarta entradas em branco e apara espaços. Nunca retorna
// nil: tags ausentes viram conjunto vazio.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// MergeTags une as tags existentes com as recebidas, sem duplicatas e sem
// entradas em branco, preservando a ordem de primeira aparição. Se o conjunto
// existente está vazio, devolve exatamente o recebido (caso no-op do update).
// Idempotente: unir um conjunto com ele mesmo não muda nada.
func MergeTags(existing, incoming []string) []string {
	incoming = NormalizeTags(incoming)
	if len(NormalizeTags(existing)) == 0 {
		return incoming
	}

	seen := make(map[string]bool, len(existing)+len(incoming))
	merged := make([]string, 0, len(existing)+len(incoming))

	for _, tag := range NormalizeTags(existing) {
		if !seen[tag] {
			seen[tag] = true
			merged = append(merged, tag)
		}
	}
	for _, tag := range incoming {
		if !seen[tag] {
			seen[tag] = true
			merged = append(merged, tag)
		}
	}

	return merged
}
