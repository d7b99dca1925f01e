package model

// CategoryTotal is one category's summed spending within an analysis.
type CategoryTotal struct {
	Category Category
	Amount   float64
}

// Analysis is the aggregate view over a working set (or a filtered view of
// one): per-category totals, the dominant persona and the grand total.
// Totals are ordered by first occurrence of each category in the records
// they summarize, which is the documented tie-break order for the persona.
type Analysis struct {
	Persona string
	Totals  []CategoryTotal
	Total   float64
}

// Empty reports whether the analysis summarizes no records at all.
func (a Analysis) Empty() bool {
	return len(a.Totals) == 0
}

// Amount returns the summed amount for a category and whether the category
// contributed any records.
func (a Analysis) Amount(c Category) (float64, bool) {
	for _, t := range a.Totals {
		if t.Category == c {
			return t.Amount, true
		}
	}
	return 0, false
}

// Map flattens the totals into a category-keyed map, the shape snapshots
// persist. Returns nil for an empty analysis.
func (a Analysis) Map() map[Category]float64 {
	if len(a.Totals) == 0 {
		return nil
	}
	m := make(map[Category]float64, len(a.Totals))
	for _, t := range a.Totals {
		m[t.Category] = t.Amount
	}
	return m
}
