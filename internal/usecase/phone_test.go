package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhoneStripsSeparators(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"vazio", "", ""},
		{"só dígitos", "5511912345678", "5511912345678"},
		{"formato BR completo", "+55 (11) 91234-5678", "5511912345678"},
		{"espaços internos", "11 91234 5678", "11912345678"},
		{"tabs e espaços", "\t11 91234-5678 ", "11912345678"},
		{"só separadores", "+ () -", ""},
		{"letras passam intactas", "ramal 42", "ramal42"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizePhone(tc.input))
		})
	}
}

// Dois candidatos que diferem só na formatação têm a mesma chave.
func TestNormalizePhoneKeyEquivalence(t *testing.T) {
	a := NormalizePhone("+55 (11) 91234-5678")
	b := NormalizePhone("5511912345678")

	assert.Equal(t, a, b)
	assert.NotEmpty(t, a)
}

func TestPhoneIndexLookupAndInsert(t *testing.T) {
	idx := make(phoneIndex)
	idx.insert("5511912345678", 7)

	id, ok := idx.lookup("5511912345678")
	assert.True(t, ok)
	assert.Equal(t, int64(7), id)

	// Chave vazia nunca entra nem casa: lead sem telefone é sempre novo.
	idx.insert("", 99)
	_, ok = idx.lookup("")
	assert.False(t, ok)
	assert.Len(t, idx, 1)
}
