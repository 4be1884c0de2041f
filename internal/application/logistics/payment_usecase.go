package logistics

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/dto"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/ports"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/entity"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/freight"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/repository"
)

// PaymentUseCase registra pagamentos a proprietários e trava os fretes incluídos.
type PaymentUseCase struct {
	txRunner  ports.TxRunner
	payments  repository.PaymentRepository
	shipments repository.ShipmentRepository
	drivers   repository.DriverRepository
	receipts  ports.ReceiptGenerator
	now       func() time.Time
}

// NewPaymentUseCase constrói o caso de uso.
func NewPaymentUseCase(
	txRunner ports.TxRunner,
	payments repository.PaymentRepository,
	shipments repository.ShipmentRepository,
	drivers repository.DriverRepository,
	receipts ports.ReceiptGenerator,
) *PaymentUseCase {
	return &PaymentUseCase{
		txRunner:  txRunner,
		payments:  payments,
		shipments: shipments,
		drivers:   drivers,
		receipts:  receipts,
		now:       time.Now,
	}
}

// Create valida o proprietário e os fretes (existentes, não pagos, do mesmo proprietário),
// grava o pagamento e marca os fretes com pagamento_id, tudo em uma transação.
func (uc *PaymentUseCase) Create(ctx context.Context, in dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	payDate, err := dto.ParseDate("data_pagamento", in.PaymentDate)
	if err != nil {
		return nil, err
	}
	// remove repetidos e ids inválidos vindos no formato de lista
	ids, err := freight.ParseIDList(freight.JoinIDs(in.IncludedShipments))
	if err != nil {
		return nil, domain.NewValidationError("fretes_incluidos", err.Error())
	}
	if len(ids) == 0 {
		return nil, domain.NewValidationError("fretes_incluidos", "informe ao menos um frete")
	}
	driverID := in.DriverID.Value()

	var (
		p      *entity.Payment
		driver *entity.Driver
		locked []*entity.Shipment
	)
	err = uc.txRunner.Run(ctx, func(tx repository.TxRepositories) error {
		var err error
		driver, err = tx.Drivers.GetByID(ctx, driverID)
		if err != nil {
			return err
		}
		if driver == nil {
			return domain.ReferenceNotFound("motorista_id", "Motorista")
		}

		locked, err = tx.Shipments.ListForUpdate(ctx, ids)
		if err != nil {
			return err
		}
		if err := checkPayableShipments(ids, locked, driverID); err != nil {
			return err
		}

		p = newPayment(in, driver, ids, locked, payDate)
		if p.ReceiptURL != nil {
			at := uc.now()
			p.ReceiptUploadedAt = &at
		}
		if err := tx.Payments.Create(ctx, p); err != nil {
			return err
		}
		return tx.Shipments.MarkPaid(ctx, p.ID, ids)
	})
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Int64("pagamento_id", p.ID).
		Str("codigo", p.Code).
		Int64("motorista_id", driverID).
		Int("fretes", len(ids)).
		Msg("pagamento registrado")

	out := toPaymentResponse(p)
	out.Payee = toPayeeResponse(freight.BuildPayee(driver))
	for _, s := range locked {
		id := p.ID
		s.PaymentID = &id
	}
	out.Shipments = toShipmentResponses(locked)
	return &out, nil
}

// Get busca pelo id numérico ou pelo codigo_pagamento, com favorecido e fretes.
func (uc *PaymentUseCase) Get(ctx context.Context, ref string) (*dto.PaymentResponse, error) {
	p, err := uc.find(ctx, ref)
	if err != nil {
		return nil, err
	}
	out := toPaymentResponse(p)
	d, err := uc.drivers.GetByID(ctx, p.DriverID)
	if err != nil {
		return nil, err
	}
	if d != nil {
		out.Payee = toPayeeResponse(freight.BuildPayee(d))
	}
	list, err := uc.shipments.ListByPayment(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	out.Shipments = toShipmentResponses(list)
	return &out, nil
}

// List lista pagamentos e o resumo de fretes pagos por proprietário.
func (uc *PaymentUseCase) List(ctx context.Context, q dto.PaymentListQuery) (*dto.PaymentListResponse, *dto.PageMeta, error) {
	f := entity.PaymentFilter{DriverID: q.DriverID, Status: q.Status}
	total, err := uc.payments.Count(ctx, f)
	if err != nil {
		return nil, nil, err
	}
	list, err := uc.payments.List(ctx, f, q.Page.Limit, q.Page.Offset())
	if err != nil {
		return nil, nil, err
	}
	summary, err := uc.payments.PaidSummaryByOwner(ctx)
	if err != nil {
		return nil, nil, err
	}

	out := &dto.PaymentListResponse{
		Items:        make([]dto.PaymentResponse, 0, len(list)),
		OwnerSummary: make([]dto.OwnerPaidSummaryResponse, 0, len(summary)),
	}
	for _, p := range list {
		out.Items = append(out.Items, toPaymentResponse(p))
	}
	for _, s := range summary {
		out.OwnerSummary = append(out.OwnerSummary, dto.OwnerPaidSummaryResponse{
			DriverID:      s.DriverID,
			DriverName:    s.DriverName,
			ShipmentCount: s.ShipmentCount,
			TotalTonnage:  s.TotalTonnage,
			TotalAmount:   s.TotalAmount,
		})
	}
	meta := dto.NewPageMeta(q.Page, total)
	return out, &meta, nil
}

// Update altera os campos enviados. metodo_pagamento é do motorista e não pode ser alterado.
func (uc *PaymentUseCase) Update(ctx context.Context, ref string, in dto.UpdatePaymentRequest) (*dto.PaymentResponse, error) {
	if in.Method != nil {
		return nil, domain.ErrPaymentMethodLocked
	}
	if in.Period == nil && in.PricePerTon == nil && in.TotalAmount == nil && in.PaymentDate == nil &&
		in.Status == nil && in.ReceiptName == nil && in.ReceiptURL == nil && in.Notes == nil {
		return nil, domain.ErrNoFieldsToUpdate
	}
	var paymentDate *time.Time
	if in.PaymentDate != nil {
		d, err := dto.ParseDate("data_pagamento", *in.PaymentDate)
		if err != nil {
			return nil, err
		}
		paymentDate = &d
	}

	var id int64
	err := uc.txRunner.Run(ctx, func(tx repository.TxRepositories) error {
		p, err := lockPayment(ctx, tx.Payments, ref)
		if err != nil {
			return err
		}
		id = p.ID
		if paymentDate != nil {
			p.PaymentDate = *paymentDate
		}
		if in.Period != nil {
			p.Period = freight.NilIfBlank(in.Period)
		}
		if in.PricePerTon != nil {
			p.PricePerTon = decimal.NewNullDecimal(*in.PricePerTon)
		}
		if in.TotalAmount != nil {
			p.TotalAmount = *in.TotalAmount
		}
		if in.Status != nil {
			p.Status = *in.Status
		}
		if in.ReceiptName != nil {
			p.ReceiptName = freight.NilIfBlank(in.ReceiptName)
		}
		if in.ReceiptURL != nil {
			p.ReceiptURL = freight.NilIfBlank(in.ReceiptURL)
			if p.ReceiptURL != nil {
				at := uc.now()
				p.ReceiptUploadedAt = &at
			}
		}
		if in.Notes != nil {
			p.Notes = freight.NilIfBlank(in.Notes)
		}
		return tx.Payments.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, strconv.FormatInt(id, 10))
}

// Delete desvincula os fretes (pagamento_id = NULL) e remove o pagamento.
func (uc *PaymentUseCase) Delete(ctx context.Context, ref string) error {
	return uc.txRunner.Run(ctx, func(tx repository.TxRepositories) error {
		p, err := lockPayment(ctx, tx.Payments, ref)
		if err != nil {
			return err
		}
		if err := tx.Shipments.ClearPayment(ctx, p.ID); err != nil {
			return err
		}
		return tx.Payments.Delete(ctx, p.ID)
	})
}

// Receipt gera o comprovante PDF do pagamento.
func (uc *PaymentUseCase) Receipt(ctx context.Context, ref string) (*dto.PaymentResponse, []byte, error) {
	out, err := uc.Get(ctx, ref)
	if err != nil {
		return nil, nil, err
	}
	pdf, err := uc.receipts.PaymentReceipt(out)
	if err != nil {
		return nil, nil, fmt.Errorf("gerar comprovante %s: %w", out.Code, err)
	}
	return out, pdf, nil
}

func (uc *PaymentUseCase) find(ctx context.Context, ref string) (*entity.Payment, error) {
	return findPayment(ctx, uc.payments, ref)
}

// findPayment aceita id numérico ou codigo_pagamento.
func findPayment(ctx context.Context, repo repository.PaymentRepository, ref string) (*entity.Payment, error) {
	ref = strings.TrimSpace(ref)
	var (
		p   *entity.Payment
		err error
	)
	if id, convErr := strconv.ParseInt(ref, 10, 64); convErr == nil {
		p, err = repo.GetByID(ctx, id)
	} else {
		p, err = repo.GetByCode(ctx, strings.ToUpper(ref))
	}
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("pagamento %s: %w", ref, domain.ErrNotFound)
	}
	return p, nil
}

// lockPayment resolve a referência e bloqueia a linha do pagamento.
func lockPayment(ctx context.Context, repo repository.PaymentRepository, ref string) (*entity.Payment, error) {
	p, err := findPayment(ctx, repo, ref)
	if err != nil {
		return nil, err
	}
	locked, err := repo.GetForUpdate(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if locked == nil {
		return nil, fmt.Errorf("pagamento %s: %w", ref, domain.ErrNotFound)
	}
	return locked, nil
}

// checkPayableShipments exige que todos os ids existam, estejam sem pagamento e pertençam ao proprietário.
func checkPayableShipments(ids []int64, locked []*entity.Shipment, driverID int64) error {
	found := make(map[int64]bool, len(locked))
	var paid, foreign []int64
	for _, s := range locked {
		found[s.ID] = true
		if s.IsPaid() {
			paid = append(paid, s.ID)
		}
		if s.DriverID != driverID {
			foreign = append(foreign, s.ID)
		}
	}
	if missing := freight.MissingIDs(ids, found); len(missing) > 0 {
		return domain.RuleError("Fretes não encontrados: %s", freight.JoinIDs(missing))
	}
	if len(paid) > 0 {
		return domain.RuleError("Fretes já pagos: %s", freight.JoinIDs(paid))
	}
	if len(foreign) > 0 {
		return domain.RuleError("Fretes de outro proprietário: %s", freight.JoinIDs(foreign))
	}
	return nil
}

func newPayment(in dto.CreatePaymentRequest, driver *entity.Driver, ids []int64, shipments []*entity.Shipment, payDate time.Time) *entity.Payment {
	p := &entity.Payment{
		DriverID:          driver.ID,
		DriverName:        driver.Name,
		Period:            freight.NilIfBlank(in.Period),
		ShipmentCount:     int64(len(ids)),
		IncludedShipments: freight.JoinIDs(ids),
		TotalTonnage:      decimal.Zero,
		TotalAmount:       in.TotalAmount,
		PaymentDate:       payDate,
		Status:            entity.PaymentStatusPending,
		Method:            driver.PaymentMethod,
		ReceiptName:       freight.NilIfBlank(in.ReceiptName),
		ReceiptURL:        freight.NilIfBlank(in.ReceiptURL),
		Notes:             freight.NilIfBlank(in.Notes),
	}
	if in.DriverName != nil && strings.TrimSpace(*in.DriverName) != "" {
		p.DriverName = strings.TrimSpace(*in.DriverName)
	}
	if in.ShipmentCount != nil {
		p.ShipmentCount = *in.ShipmentCount
	}
	if in.TotalTonnage != nil {
		p.TotalTonnage = *in.TotalTonnage
	} else {
		for _, s := range shipments {
			p.TotalTonnage = p.TotalTonnage.Add(s.Tonnage)
		}
	}
	if in.PricePerTon != nil {
		p.PricePerTon = decimal.NewNullDecimal(*in.PricePerTon)
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	if in.Code != nil {
		if code := strings.ToUpper(strings.TrimSpace(*in.Code)); freight.IsPaymentCode(code) {
			p.Code = code
		}
	}
	return p
}
