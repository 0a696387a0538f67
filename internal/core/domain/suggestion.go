package domain

// ProductSuggestion is the analyzer's proposal for a product listing.
type ProductSuggestion struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// IsEmpty reports whether the suggestion carries no fields.
func (s *ProductSuggestion) IsEmpty() bool {
	return s.Name == "" && s.Description == "" && s.Category == ""
}

// StyleAdvice is the style assistant's answer to a shopper query.
type StyleAdvice struct {
	Advice          string   `json:"advice"`
	SuggestedColors []string `json:"suggestedColors"`
	Vibe            string   `json:"vibe"`
}
