package model

// SearchHit is the outward shape of one ranked result. PageNumber is nil
// when the unit has no page attribution (chunk mode).
type SearchHit struct {
	DocumentName string  `json:"document_name"`
	PageNumber   *int    `json:"page_number"`
	Score        float64 `json:"score"`
	Snippet      string  `json:"snippet"`
}
