package freight

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var upperPT = cases.Upper(language.BrazilianPortuguese)

// UpperName remove espaços extras e põe em maiúsculas respeitando acentos ("joão" → "JOÃO").
func UpperName(s string) string {
	return upperPT.String(strings.Join(strings.Fields(s), " "))
}

// NilIfBlank devolve nil para string vazia ou só com espaços.
func NilIfBlank(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

// OnlyDigits remove tudo que não for dígito (CPF, CNPJ, telefone).
func OnlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
