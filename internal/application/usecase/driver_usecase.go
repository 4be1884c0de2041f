package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/dto"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/ports"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/entity"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/freight"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/repository"
)

// DriverUseCase casos de uso de motoristas e proprietários.
type DriverUseCase struct {
	txRunner  ports.TxRunner
	repo      repository.DriverRepository
	vehicles  repository.VehicleRepository
	shipments repository.ShipmentRepository
}

// NewDriverUseCase constrói o caso de uso.
func NewDriverUseCase(
	txRunner ports.TxRunner,
	repo repository.DriverRepository,
	vehicles repository.VehicleRepository,
	shipments repository.ShipmentRepository,
) *DriverUseCase {
	return &DriverUseCase{txRunner: txRunner, repo: repo, vehicles: vehicles, shipments: shipments}
}

// Create cadastra o motorista com nome em maiúsculas e código MOT-YYYY-NNN.
func (uc *DriverUseCase) Create(ctx context.Context, in dto.CreateDriverRequest) (*dto.DriverResponse, error) {
	license, err := dto.ParseOptionalDate("cnh_validade", in.LicenseExpiry)
	if err != nil {
		return nil, err
	}
	d := &entity.Driver{
		Name:             freight.UpperName(in.Name),
		Document:         normalizeDocument(in.Document),
		Phone:            strings.TrimSpace(in.Phone),
		Email:            freight.NilIfBlank(in.Email),
		Address:          freight.NilIfBlank(in.Address),
		Status:           entity.DriverStatusActive,
		Type:             in.Type,
		PaymentMethod:    in.PaymentMethod,
		PixKeyType:       freight.NilIfBlank(in.PixKeyType),
		PixKey:           freight.NilIfBlank(in.PixKey),
		Bank:             freight.NilIfBlank(in.Bank),
		Agency:           freight.NilIfBlank(in.Agency),
		Account:          freight.NilIfBlank(in.Account),
		AccountType:      freight.NilIfBlank(in.AccountType),
		LicenseExpiry:    license,
		RevenueGenerated: decimal.Zero,
	}
	if in.Status != nil {
		d.Status = *in.Status
	}
	if err := validatePaymentData(d); err != nil {
		return nil, err
	}
	err = uc.txRunner.Run(ctx, func(tx repository.TxRepositories) error {
		return tx.Drivers.Create(ctx, d)
	})
	if err != nil {
		return nil, err
	}
	return toDriverResponse(d), nil
}

// GetByID devolve o motorista e o veículo em que ele é motorista fixo, se houver.
func (uc *DriverUseCase) GetByID(ctx context.Context, id int64) (*dto.DriverResponse, error) {
	d, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, fmt.Errorf("motorista %d: %w", id, domain.ErrNotFound)
	}
	out := toDriverResponse(d)
	v, err := uc.vehicles.GetByFixedDriver(ctx, id)
	if err != nil {
		return nil, err
	}
	if v != nil {
		out.LinkedVehicle = toVehicleResponse(v)
	}
	return out, nil
}

// List lista motoristas com filtros e paginação.
func (uc *DriverUseCase) List(ctx context.Context, q dto.DriverListQuery) (*dto.Page[dto.DriverResponse], error) {
	f := entity.DriverFilter{Status: q.Status, Type: q.Type}
	total, err := uc.repo.Count(ctx, f)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, f, q.Page.Limit, q.Page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.DriverResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toDriverResponse(d))
	}
	return &dto.Page[dto.DriverResponse]{Items: items, Meta: dto.NewPageMeta(q.Page, total)}, nil
}

// Update aplica os campos enviados; string vazia em campo opcional grava NULL.
func (uc *DriverUseCase) Update(ctx context.Context, id int64, in dto.UpdateDriverRequest) (*dto.DriverResponse, error) {
	if driverPatchIsEmpty(in) {
		return nil, domain.ErrNoFieldsToUpdate
	}
	d, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, fmt.Errorf("motorista %d: %w", id, domain.ErrNotFound)
	}
	if in.LicenseExpiry != nil {
		license, err := dto.ParseOptionalDate("cnh_validade", in.LicenseExpiry)
		if err != nil {
			return nil, err
		}
		d.LicenseExpiry = license
	}
	if in.Name != nil {
		d.Name = freight.UpperName(*in.Name)
	}
	if in.Document != nil {
		d.Document = normalizeDocument(in.Document)
	}
	if in.Phone != nil {
		d.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Email != nil {
		d.Email = freight.NilIfBlank(in.Email)
	}
	if in.Address != nil {
		d.Address = freight.NilIfBlank(in.Address)
	}
	if in.Status != nil {
		d.Status = *in.Status
	}
	if in.Type != nil {
		d.Type = *in.Type
	}
	if in.PaymentMethod != nil {
		d.PaymentMethod = *in.PaymentMethod
	}
	if in.PixKeyType != nil {
		d.PixKeyType = freight.NilIfBlank(in.PixKeyType)
	}
	if in.PixKey != nil {
		d.PixKey = freight.NilIfBlank(in.PixKey)
	}
	if in.Bank != nil {
		d.Bank = freight.NilIfBlank(in.Bank)
	}
	if in.Agency != nil {
		d.Agency = freight.NilIfBlank(in.Agency)
	}
	if in.Account != nil {
		d.Account = freight.NilIfBlank(in.Account)
	}
	if in.AccountType != nil {
		d.AccountType = freight.NilIfBlank(in.AccountType)
	}
	if err := validatePaymentData(d); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Delete remove o motorista; com fretes vinculados devolve ErrInUse.
func (uc *DriverUseCase) Delete(ctx context.Context, id int64) error {
	d, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if d == nil {
		return fmt.Errorf("motorista %d: %w", id, domain.ErrNotFound)
	}
	n, err := uc.shipments.CountByDriver(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrInUse
	}
	return uc.repo.Delete(ctx, id)
}

// validatePaymentData exige chave para pix e banco/agência/conta para transferência.
func validatePaymentData(d *entity.Driver) error {
	var issues []domain.FieldIssue
	switch d.PaymentMethod {
	case entity.PaymentMethodPix:
		if d.PixKey == nil {
			issues = append(issues, domain.FieldIssue{Field: "chave_pix", Message: "obrigatória para pagamento via pix"})
		}
		if d.PixKeyType == nil {
			issues = append(issues, domain.FieldIssue{Field: "chave_pix_tipo", Message: "obrigatório para pagamento via pix"})
		}
	case entity.PaymentMethodBank:
		if d.Bank == nil {
			issues = append(issues, domain.FieldIssue{Field: "banco", Message: "obrigatório para transferência bancária"})
		}
		if d.Agency == nil {
			issues = append(issues, domain.FieldIssue{Field: "agencia", Message: "obrigatória para transferência bancária"})
		}
		if d.Account == nil {
			issues = append(issues, domain.FieldIssue{Field: "conta", Message: "obrigatória para transferência bancária"})
		}
	}
	if len(issues) > 0 {
		return &domain.ValidationError{Fields: issues}
	}
	return nil
}

func normalizeDocument(doc *string) *string {
	if doc == nil {
		return nil
	}
	digits := freight.OnlyDigits(*doc)
	if digits == "" {
		return nil
	}
	return &digits
}

func driverPatchIsEmpty(in dto.UpdateDriverRequest) bool {
	return in.Name == nil && in.Document == nil && in.Phone == nil && in.Email == nil &&
		in.Address == nil && in.Status == nil && in.Type == nil && in.PaymentMethod == nil &&
		in.PixKeyType == nil && in.PixKey == nil && in.Bank == nil && in.Agency == nil &&
		in.Account == nil && in.AccountType == nil && in.LicenseExpiry == nil
}

func toDriverResponse(d *entity.Driver) *dto.DriverResponse {
	out := &dto.DriverResponse{
		ID:               d.ID,
		Code:             d.Code,
		Name:             d.Name,
		Document:         d.Document,
		Phone:            d.Phone,
		Email:            d.Email,
		Address:          d.Address,
		Status:           d.Status,
		Type:             d.Type,
		PaymentMethod:    d.PaymentMethod,
		PixKeyType:       d.PixKeyType,
		PixKey:           d.PixKey,
		Bank:             d.Bank,
		Agency:           d.Agency,
		Account:          d.Account,
		AccountType:      d.AccountType,
		LicenseExpiry:    dto.FormatOptionalDate(d.LicenseExpiry),
		RevenueGenerated: d.RevenueGenerated,
		TripsCompleted:   d.TripsCompleted,
	}
	if !d.CreatedAt.IsZero() {
		created, updated := d.CreatedAt, d.UpdatedAt
		out.CreatedAt, out.UpdatedAt = &created, &updated
	}
	return out
}
