package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound           = errors.New("recurso não encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("não autorizado")
	ErrForbidden          = errors.New("acesso negado")
	ErrInvalidCredentials = errors.New("credenciais inválidas")
	ErrSchemaOutdated     = errors.New("esquema do banco desatualizado")

	// ErrBusinessRule agrupa violações de regra de negócio (HTTP 400).
	ErrBusinessRule = errors.New("regra de negócio violada")

	ErrPaymentLocked       = fmt.Errorf("%w: frete já pago não pode ser alterado", ErrBusinessRule)
	ErrCostOnPaidShipment  = fmt.Errorf("%w: não é permitido vincular custo a frete já pago", ErrBusinessRule)
	ErrBatchMixedShipments = fmt.Errorf("%w: para criação em lote, todos os custos devem ser do mesmo frete", ErrBusinessRule)
	ErrEmptyBatch          = fmt.Errorf("%w: informe ao menos um custo", ErrBusinessRule)
	ErrNoFieldsToUpdate    = fmt.Errorf("%w: nenhum campo válido para atualizar", ErrBusinessRule)
	ErrPaymentMethodLocked = fmt.Errorf("%w: metodo_pagamento é definido pelo motorista e não pode ser alterado", ErrBusinessRule)
	ErrInUse               = fmt.Errorf("%w: registro possui fretes vinculados", ErrBusinessRule)
)

// RuleError cria uma violação de regra de negócio com mensagem própria.
func RuleError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrBusinessRule, fmt.Sprintf(format, args...))
}

// RuleMessage devolve a mensagem de negócio sem o prefixo genérico.
func RuleMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ErrBusinessRule.Error()+": "); i >= 0 {
		return msg[i+len(ErrBusinessRule.Error())+2:]
	}
	return msg
}

// FieldIssue é um problema de validação em um campo da requisição.
type FieldIssue struct {
	Field   string `json:"campo"`
	Message string `json:"mensagem"`
}

// ValidationError lista os campos inválidos de uma requisição.
type ValidationError struct {
	Fields []FieldIssue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "dados inválidos: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError atalho para um único campo.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldIssue{{Field: field, Message: message}}}
}

// FieldError indica referência inválida em um campo (ex.: motorista_id inexistente).
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Message }

func (e *FieldError) Unwrap() error { return ErrInvalidInput }

// ReferenceNotFound cria o FieldError padrão para ids referenciados inexistentes.
func ReferenceNotFound(field, entity string) *FieldError {
	return &FieldError{Field: field, Message: entity + " não encontrado"}
}
