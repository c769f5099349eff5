package models

// AnnotationEntry is one parsed unit of the annotation string.
type AnnotationEntry struct {
	// City is the estimated city and state, or free text such as "International".
	City string `json:"city"`
	// ZIP is the estimated postal code, or "N/A" when outside the US and Canada.
	ZIP string `json:"zip"`
	// Score is the relevance score, nominally 1-10.
	Score int `json:"score"`
}
