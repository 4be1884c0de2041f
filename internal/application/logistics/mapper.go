package logistics

import (
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/dto"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/entity"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/freight"
)

func toShipmentResponse(s *entity.Shipment) dto.ShipmentResponse {
	out := dto.ShipmentResponse{
		ID:            s.ID,
		Code:          s.Code,
		Origin:        s.Origin,
		Destination:   s.Destination,
		DriverID:      s.DriverID,
		DriverName:    s.DriverName,
		OwnerName:     s.OwnerName,
		OwnerType:     s.OwnerType,
		VehicleID:     s.VehicleID,
		VehiclePlate:  s.VehiclePlate,
		VehicleModel:  s.VehicleModel,
		Ticket:        s.Ticket,
		InvoiceNumber: s.InvoiceNumber,
		FarmID:        s.FarmID,
		FarmName:      s.FarmName,
		Commodity:     s.Commodity,
		Variety:       s.Variety,
		Date:          dto.FormatDate(s.Date),
		Sacks:         s.Sacks,
		Tonnage:       s.Tonnage,
		PricePerTon:   s.PricePerTon,
		Revenue:       s.Revenue,
		Costs:         s.Costs,
		Result:        s.Result,
		PaymentID:     s.PaymentID,
	}
	if !s.CreatedAt.IsZero() {
		created, updated := s.CreatedAt, s.UpdatedAt
		out.CreatedAt, out.UpdatedAt = &created, &updated
	}
	return out
}

func toShipmentResponses(list []*entity.Shipment) []dto.ShipmentResponse {
	out := make([]dto.ShipmentResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toShipmentResponse(s))
	}
	return out
}

func toPendingResponses(groups []*freight.OwnerReport) []dto.PendingOwnerResponse {
	out := make([]dto.PendingOwnerResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, dto.PendingOwnerResponse{
			OwnerID:       g.OwnerID,
			Name:          g.Name,
			Type:          g.Type,
			ReportType:    g.ReportType,
			ShipmentCount: g.ShipmentCount,
			TotalTonnage:  g.TotalTonnage,
			TotalRevenue:  g.TotalRevenue,
			TotalCosts:    g.TotalCosts,
			TotalResult:   g.TotalResult,
			VehicleIDs:    g.VehicleIDs,
			Plates:        g.Plates,
			Shipments:     toShipmentResponses(g.Shipments),
		})
	}
	return out
}

func toCostResponse(c *entity.CostEntry) dto.CostResponse {
	out := dto.CostResponse{
		ID:          c.ID,
		ShipmentID:  c.ShipmentID,
		Type:        c.Type,
		Description: c.Description,
		Amount:      c.Amount,
		Date:        dto.FormatDate(c.Date),
		HasReceipt:  c.HasReceipt,
		Notes:       c.Notes,
		Driver:      c.Driver,
		Vehicle:     c.Vehicle,
		Route:       c.Route,
		Liters:      dto.NullDecimalPtr(c.Liters),
		FuelType:    c.FuelType,
	}
	if !c.CreatedAt.IsZero() {
		created, updated := c.CreatedAt, c.UpdatedAt
		out.CreatedAt, out.UpdatedAt = &created, &updated
	}
	return out
}

func toPaymentResponse(p *entity.Payment) dto.PaymentResponse {
	out := dto.PaymentResponse{
		ID:                p.ID,
		Code:              p.Code,
		DriverID:          p.DriverID,
		DriverName:        p.DriverName,
		Period:            p.Period,
		ShipmentCount:     p.ShipmentCount,
		IncludedShipments: p.IncludedShipments,
		TotalTonnage:      p.TotalTonnage,
		PricePerTon:       dto.NullDecimalPtr(p.PricePerTon),
		TotalAmount:       p.TotalAmount,
		PaymentDate:       dto.FormatDate(p.PaymentDate),
		Status:            p.Status,
		Method:            p.Method,
		ReceiptName:       p.ReceiptName,
		ReceiptURL:        p.ReceiptURL,
		ReceiptUploadedAt: p.ReceiptUploadedAt,
		Notes:             p.Notes,
	}
	if !p.CreatedAt.IsZero() {
		created, updated := p.CreatedAt, p.UpdatedAt
		out.CreatedAt, out.UpdatedAt = &created, &updated
	}
	return out
}

func toPayeeResponse(p freight.Payee) *dto.PayeeResponse {
	return &dto.PayeeResponse{
		Name:        p.Name,
		Document:    p.Document,
		Method:      p.Method,
		PixKeyType:  p.PixKeyType,
		PixKey:      p.PixKey,
		Bank:        p.Bank,
		Agency:      p.Agency,
		Account:     p.Account,
		AccountType: p.AccountType,
	}
}
