package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/freight"
)

// DateLayout formato das datas trafegadas na API.
const DateLayout = "2006-01-02"

// PageQuery paginação das listagens (page/limit, mínimo 1).
type PageQuery struct {
	Page  int
	Limit int
}

// NewPageQuery aplica os padrões 1/10 e o piso 1. limit=0 conta como ausente.
func NewPageQuery(page, limit int) PageQuery {
	if page < 1 {
		page = 1
	}
	switch {
	case limit == 0:
		limit = 10
	case limit < 1:
		limit = 1
	}
	return PageQuery{Page: page, Limit: limit}
}

// Offset devolve (page-1)*limit, saturado em math.MaxInt.
func (p PageQuery) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// PageMeta metadados de página nas respostas.
type PageMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewPageMeta calcula totalPages = max(1, ceil(total/limit)).
func NewPageMeta(q PageQuery, total int64) PageMeta {
	pages := int(math.Ceil(float64(total) / float64(q.Limit)))
	if pages < 1 {
		pages = 1
	}
	return PageMeta{Page: q.Page, Limit: q.Limit, Total: total, TotalPages: pages}
}

// Page é uma página de itens com seus metadados.
type Page[T any] struct {
	Items []T
	Meta  PageMeta
}

// Envelope é o corpo padrão de sucesso.
type Envelope struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Data    any       `json:"data,omitempty"`
	Meta    *PageMeta `json:"meta,omitempty"`
}

// ErrorResponse corpo HTTP de erro.
type ErrorResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Code    string              `json:"code,omitempty"`
	Field   string              `json:"field,omitempty"`
	Hint    string              `json:"hint,omitempty"`
	Errors  []domain.FieldIssue `json:"errors,omitempty"`
}

// FlexInt64 aceita id como número (7) ou string ("7").
type FlexInt64 int64

func (f *FlexInt64) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return fmt.Errorf("id inválido: %s", string(b))
	}
	*f = FlexInt64(n)
	return nil
}

// Ptr converte para *int64 (nil se f for nil).
func (f *FlexInt64) Ptr() *int64 {
	if f == nil {
		return nil
	}
	v := int64(*f)
	return &v
}

// Value devolve o id ou 0.
func (f *FlexInt64) Value() int64 {
	if f == nil {
		return 0
	}
	return int64(*f)
}

// ID atalho para construir FlexInt64 em código.
func ID(v int64) *FlexInt64 {
	f := FlexInt64(v)
	return &f
}

// OptionalID campo de id em PATCH: ausente (Set=false), null explícito (Set=true, Value=nil) ou valor.
type OptionalID struct {
	Set   bool
	Value *int64
}

func (o *OptionalID) UnmarshalJSON(b []byte) error {
	var f *FlexInt64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	o.Set, o.Value = true, f.Ptr()
	return nil
}

// SetID atalho para um OptionalID com valor.
func SetID(v int64) OptionalID {
	return OptionalID{Set: true, Value: &v}
}

// NullID atalho para um OptionalID com null explícito.
func NullID() OptionalID {
	return OptionalID{Set: true}
}

// FlexDecimal aceita número, string com vírgula decimal ("32,5") ou vazio (nulo).
type FlexDecimal struct {
	decimal.NullDecimal
}

func (f *FlexDecimal) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		f.NullDecimal = decimal.NullDecimal{}
		return nil
	}
	var s string
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	} else {
		s = string(b)
	}
	d, err := freight.ParseDecimalComma(s)
	if err != nil {
		return fmt.Errorf("número inválido: %s", string(b))
	}
	f.NullDecimal = d
	return nil
}

// Dec atalho para construir FlexDecimal em código.
func Dec(s string) FlexDecimal {
	return FlexDecimal{decimal.NewNullDecimal(decimal.RequireFromString(s))}
}

// FlexIDList aceita "1,2,3", [1,2,3] ou ["1","2"].
type FlexIDList []int64

func (l *FlexIDList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var raw []FlexInt64
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		out := make([]int64, len(raw))
		for i, v := range raw {
			out[i] = int64(v)
		}
		*l = out
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("fretes_incluidos inválido")
	}
	ids, err := freight.ParseIDList(s)
	if err != nil {
		return err
	}
	*l = ids
	return nil
}

// ParseDate lê uma data YYYY-MM-DD; o campo identifica o erro de validação.
func ParseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, "data inválida, use AAAA-MM-DD")
	}
	return t, nil
}

// ParseOptionalDate como ParseDate, mas vazio/nil vira nil.
func ParseOptionalDate(field string, s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := ParseDate(field, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatDate formata para YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatOptionalDate formata datas opcionais.
func FormatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

// NullDecimalPtr converte NullDecimal em ponteiro para serialização com null.
func NullDecimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}
