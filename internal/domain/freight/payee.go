package freight

import "github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/entity"

// Payee são os dados de recebimento do proprietário exibidos no pagamento.
type Payee struct {
	Name        string
	Document    *string
	Method      string
	PixKeyType  *string
	PixKey      *string
	Bank        *string
	Agency      *string
	Account     *string
	AccountType *string
}

// BuildPayee monta o favorecido conforme a forma de pagamento do motorista.
// Pix expõe apenas a chave; transferência expõe apenas os dados bancários.
func BuildPayee(d *entity.Driver) Payee {
	p := Payee{Name: d.Name, Document: d.Document, Method: d.PaymentMethod}
	if d.PaymentMethod == entity.PaymentMethodPix {
		p.PixKeyType = d.PixKeyType
		p.PixKey = d.PixKey
		return p
	}
	p.Bank = d.Bank
	p.Agency = d.Agency
	p.Account = d.Account
	p.AccountType = d.AccountType
	return p
}
