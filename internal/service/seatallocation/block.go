package seatallocation

import (
	"sort"

	"github.com/m04kA/SMC-FacilityBooking/pkg/seatlabel"
)

// FindContiguousBlock ищет capacity мест подряд в одной зоне.
// Кандидаты - начала серий (место, перед которым нет свободного места той же зоны),
// перебираются по возрастанию номера; возвращается первый подходящий блок.
// Если блока нет, возвращает nil.
//
// Сложность O(n*capacity) по числу свободных мест; для этажей на сотни мест этого достаточно.
func FindContiguousBlock(capacity int, available []string) []string {
	if capacity <= 0 || len(available) == 0 {
		return nil
	}

	type seat struct {
		prefix string
		number int
	}

	free := make(map[seat]struct{}, len(available))
	candidates := make([]seatlabel.Label, 0, len(available))
	for _, raw := range available {
		label, err := seatlabel.Parse(seatlabel.Sanitize(raw))
		if err != nil {
			continue
		}
		key := seat{prefix: label.Prefix, number: label.Number}
		if _, dup := free[key]; dup {
			continue
		}
		free[key] = struct{}{}
		candidates = append(candidates, label)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Number < candidates[j].Number
	})

	for _, start := range candidates {
		if _, ok := free[seat{prefix: start.Prefix, number: start.Number - 1}]; ok {
			continue
		}

		block := make([]string, 0, capacity)
		for current := start; len(block) < capacity; current = current.Next() {
			if _, ok := free[seat{prefix: current.Prefix, number: current.Number}]; !ok {
				break
			}
			block = append(block, current.String())
		}

		if len(block) == capacity {
			return block
		}
	}

	return nil
}
