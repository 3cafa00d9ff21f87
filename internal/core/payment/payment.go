package payment

import (
	"fmt"
	"sort"
)

// Common cash denominations handed over at the register, in rupiah.
var denominations = []int{10000, 20000, 50000, 100000}

type Evaluation struct {
	Total  int
	Cash   int
	Change int
	Valid  bool
}

func Evaluate(total, cash int) Evaluation {
	return Evaluation{
		Total:  total,
		Cash:   cash,
		Change: cash - total,
		Valid:  cash >= total,
	}
}

// DisplayChange never goes negative: before enough cash is tendered the
// register shows a change of 0, not a debt.
func (e Evaluation) DisplayChange() int {
	if e.Change < 0 {
		return 0
	}
	return e.Change
}

type Suggestion struct {
	Amount int    `json:"amount"`
	Label  string `json:"label"`
}

// Suggestions ranks quick-cash amounts the operator can tap instead of
// typing the tender: the exact total, the common denominations, and the
// next multiples of 10k/50k above the total. Only amounts covering the
// total survive; the four smallest are kept, ascending.
func Suggestions(total int) []Suggestion {
	candidates := []int{total}
	candidates = append(candidates, denominations...)
	if total%50000 != 0 {
		candidates = append(candidates, ceilTo(total, 50000))
	}
	if total%10000 != 0 {
		candidates = append(candidates, ceilTo(total, 10000))
	}

	seen := make(map[int]bool, len(candidates))
	amounts := make([]int, 0, len(candidates))
	for _, amt := range candidates {
		if seen[amt] || amt < total {
			continue
		}
		seen[amt] = true
		amounts = append(amounts, amt)
	}
	sort.Ints(amounts)

	if len(amounts) > 4 {
		amounts = amounts[:4]
	}

	suggestions := make([]Suggestion, 0, len(amounts))
	for _, amt := range amounts {
		suggestions = append(suggestions, Suggestion{Amount: amt, Label: label(amt, total)})
	}
	return suggestions
}

func label(amount, total int) string {
	if amount == total {
		return "Uang Pas"
	}
	if amount >= 1000 {
		return fmt.Sprintf("%dk", amount/1000)
	}
	return fmt.Sprintf("%d", amount)
}

func ceilTo(n, multiple int) int {
	return (n + multiple - 1) / multiple * multiple
}
