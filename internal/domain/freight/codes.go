package freight

import (
	"fmt"
	"regexp"
	"time"
)

// Prefixos dos códigos de exibição.
const (
	PrefixShipment = "FRT"
	PrefixFarm     = "FAZ"
	PrefixDriver   = "MOT"
	PrefixPayment  = "PAG"
	PrefixVehicle  = "FROTA"
)

var (
	shipmentCodeRe = regexp.MustCompile(`^FRT-\d{4}-[A-Z0-9]+$`)
	paymentCodeRe  = regexp.MustCompile(`^PAG-\d{4}-[A-Z0-9]+$`)
)

// YearCode monta o código PREFIXO-AAAA-NNN a partir do id gerado pelo banco.
func YearCode(prefix string, at time.Time, id int64) string {
	return fmt.Sprintf("%s-%d-%03d", prefix, at.Year(), id)
}

// SeqCode monta o código PREFIXO-NNN (usado pela frota).
func SeqCode(prefix string, id int64) string {
	return fmt.Sprintf("%s-%03d", prefix, id)
}

// IsShipmentCode indica se o código enviado pelo cliente tem o formato de frete.
func IsShipmentCode(code string) bool {
	return shipmentCodeRe.MatchString(code)
}

// IsPaymentCode indica se o código enviado pelo cliente tem o formato de pagamento.
func IsPaymentCode(code string) bool {
	return paymentCodeRe.MatchString(code)
}
