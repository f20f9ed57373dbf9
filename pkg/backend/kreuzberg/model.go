package kreuzberg

type ExtractionResult struct {
	Content  string `json:"content"`
	MimeType string `json:"mime_type"`

	Chunks []Chunk `json:"chunks"`
}

type Chunk struct {
	Content string `json:"content"`

	Metadata ChunkMetadata `json:"metadata"`
}

type ChunkMetadata struct {
	PageNumber int `json:"page_number"`
}
