package freight

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/entity"
)

var (
	nonAlnumRe    = regexp.MustCompile(`[^A-Z0-9]`)
	mercosulRe    = regexp.MustCompile(`^([A-Z]{3})(\d[A-Z]\d{2})$`)
	oldPlateRe    = regexp.MustCompile(`^([A-Z]{3})(\d{4})$`)
	plateFormatRe = regexp.MustCompile(`^[A-Z]{3}-\d[A-Z0-9]\d{2}$`)
)

// NormalizePlate padroniza a placa: AAA9A99 → AAA-9A99 (Mercosul) e AAA9999 → AAA-9999.
// Outros formatos voltam apenas em maiúsculas e sem pontuação.
func NormalizePlate(p string) string {
	cleaned := nonAlnumRe.ReplaceAllString(strings.ToUpper(strings.TrimSpace(p)), "")
	if m := mercosulRe.FindStringSubmatch(cleaned); m != nil {
		return m[1] + "-" + m[2]
	}
	if m := oldPlateRe.FindStringSubmatch(cleaned); m != nil {
		return m[1] + "-" + m[2]
	}
	return cleaned
}

// IsValidPlate indica se a placa já normalizada é Mercosul ou do padrão antigo.
func IsValidPlate(p string) bool {
	return plateFormatRe.MatchString(NormalizePlate(p))
}

// HasTrailer indica se o tipo de veículo mantém placa de carreta.
func HasTrailer(vehicleType string) bool {
	switch strings.ToUpper(vehicleType) {
	case entity.VehicleTypeCarreta, entity.VehicleTypeBitrem, entity.VehicleTypeRodotrem:
		return true
	}
	return false
}

// ParseDecimalComma aceita "12,5" ou "12.5"; vazio devolve Valid=false.
func ParseDecimalComma(s string) (decimal.NullDecimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}
