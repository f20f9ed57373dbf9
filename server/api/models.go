package api

type Document struct {
	Content string `json:"content"`

	Backend   string `json:"backend"`
	PageCount int    `json:"page_count"`

	Warnings []string       `json:"warnings,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type Backend struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	Category string `json:"category"`
	Model    string `json:"model,omitempty"`

	Capabilities []string `json:"capabilities,omitempty"`

	CostPerPage float64 `json:"cost_per_page,omitempty"`

	MaxPages    int   `json:"max_pages,omitempty"`
	MaxFileSize int64 `json:"max_file_size,omitempty"`

	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

type Outcome struct {
	Backend string `json:"backend"`

	Document *Document `json:"document,omitempty"`
	Error    string    `json:"error,omitempty"`
}

type Similarity struct {
	A string `json:"a"`
	B string `json:"b"`

	Score float64 `json:"score"`
}

type Comparison struct {
	Outcomes []Outcome `json:"outcomes"`

	Similarities []Similarity `json:"similarities,omitempty"`
}
