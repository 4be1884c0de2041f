package freight

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ParseIDList lê "1, 2,3" em []int64 sem repetições, preservando a ordem.
func ParseIDList(csv string) ([]int64, error) {
	var ids []int64
	seen := make(map[int64]struct{})
	for _, part := range strings.Split(csv, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("id de frete inválido: %q", part)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

// JoinIDs faz o inverso de ParseIDList.
func JoinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

// MissingIDs devolve os ids pedidos que não estão em found, ordenados.
func MissingIDs(requested []int64, found map[int64]bool) []int64 {
	var missing []int64
	for _, id := range requested {
		if !found[id] {
			missing = append(missing, id)
		}
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return missing
}
