package docling

type TaskStatus string

const (
	TaskStatusPending TaskStatus = "pending"
	TaskStatusStarted TaskStatus = "started"
	TaskStatusSuccess TaskStatus = "success"
)

type TaskResult struct {
	TaskID     string     `json:"task_id"`
	TaskStatus TaskStatus `json:"task_status"`

	Document *Document `json:"document"`

	Errors []string `json:"errors"`
}

type Document struct {
	Filename string `json:"filename"`

	Text     string `json:"text_content"`
	Markdown string `json:"md_content"`
}
