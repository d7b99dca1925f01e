package model

// RawRecord is a single expense row as delivered by a row source (file
// parser, free-text parser, OFX import, image analysis). Amounts are
// expected to arrive sign-normalized to a positive magnitude; rows with an
// empty item or a non-positive amount are filtered out by the sources.
type RawRecord struct {
	Category string  `json:"category"`
	Item     string  `json:"item"`
	Amount   float64 `json:"totalSpent"`
}

// Record is a classified expense entry. Resolved is assigned exactly once
// at ingestion and never recomputed; re-classification requires
// re-ingesting the row.
type Record struct {
	RawCategory string   `json:"category"`
	Item        string   `json:"item"`
	Amount      float64  `json:"totalSpent"`
	Resolved    Category `json:"reclassified"`
}
