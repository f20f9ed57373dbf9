package mistral

type Response struct {
	Model string `json:"model"`
	Pages []Page `json:"pages"`

	UsageInfo *UsageInfo `json:"usage_info"`
}

type Page struct {
	Index int `json:"index"`

	Markdown string `json:"markdown"`
}

type UsageInfo struct {
	PagesProcessed int `json:"pages_processed"`
	DocSizeBytes   int `json:"doc_size_bytes"`
}
