package freight

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/entity"
)

// Tipos de relatório de fretes pendentes.
const (
	ReportInternalGuide = "GUIA_INTERNA"
	ReportThirdParty    = "PAGAMENTO_TERCEIRO"
)

// ReportType devolve GUIA_INTERNA para motorista próprio e PAGAMENTO_TERCEIRO para os demais.
func ReportType(driverType string) string {
	if driverType == entity.DriverTypeOwn {
		return ReportInternalGuide
	}
	return ReportThirdParty
}

// OwnerReport agrupa os fretes ainda não pagos de um proprietário.
type OwnerReport struct {
	OwnerID       int64
	Name          string
	Type          string
	ReportType    string
	ShipmentCount int
	TotalTonnage  decimal.Decimal
	TotalRevenue  decimal.Decimal
	TotalCosts    decimal.Decimal
	TotalResult   decimal.Decimal
	VehicleIDs    []int64
	Plates        []string
	Shipments     []*entity.Shipment
}

// GroupPendingByOwner agrupa fretes por motorista/proprietário, ordenando os grupos por nome.
// A ordem dos fretes dentro do grupo é a de entrada.
func GroupPendingByOwner(shipments []*entity.Shipment) []*OwnerReport {
	byOwner := make(map[int64]*OwnerReport)
	var order []*OwnerReport
	for _, s := range shipments {
		r, ok := byOwner[s.DriverID]
		if !ok {
			typ := ""
			if s.OwnerType != nil {
				typ = *s.OwnerType
			}
			r = &OwnerReport{
				OwnerID:      s.DriverID,
				Name:         ownerName(s),
				Type:         typ,
				ReportType:   ReportType(typ),
				TotalTonnage: decimal.Zero,
				TotalRevenue: decimal.Zero,
				TotalCosts:   decimal.Zero,
				TotalResult:  decimal.Zero,
				VehicleIDs:   []int64{},
				Plates:       []string{},
			}
			byOwner[s.DriverID] = r
			order = append(order, r)
		}
		r.ShipmentCount++
		r.TotalTonnage = r.TotalTonnage.Add(s.Tonnage)
		r.TotalRevenue = r.TotalRevenue.Add(s.Revenue)
		r.TotalCosts = r.TotalCosts.Add(s.Costs)
		r.TotalResult = r.TotalResult.Add(s.Result)
		r.VehicleIDs = appendUniqueID(r.VehicleIDs, s.VehicleID)
		if s.VehiclePlate != nil && *s.VehiclePlate != "" {
			r.Plates = appendUniqueString(r.Plates, *s.VehiclePlate)
		}
		r.Shipments = append(r.Shipments, s)
	}
	sort.SliceStable(order, func(i, j int) bool {
		if order[i].Name != order[j].Name {
			return order[i].Name < order[j].Name
		}
		return order[i].OwnerID < order[j].OwnerID
	})
	return order
}

func ownerName(s *entity.Shipment) string {
	if s.OwnerName != nil && *s.OwnerName != "" {
		return *s.OwnerName
	}
	if s.DriverName != nil {
		return *s.DriverName
	}
	return ""
}

func appendUniqueID(ids []int64, id int64) []int64 {
	for _, v := range ids {
		if v == id {
			return ids
		}
	}
	return append(ids, id)
}

func appendUniqueString(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
