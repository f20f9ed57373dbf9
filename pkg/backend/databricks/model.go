package databricks

type StatementState string

const (
	StatementStatePending   StatementState = "PENDING"
	StatementStateRunning   StatementState = "RUNNING"
	StatementStateSucceeded StatementState = "SUCCEEDED"
	StatementStateFailed    StatementState = "FAILED"
	StatementStateCanceled  StatementState = "CANCELED"
)

type StatementRequest struct {
	WarehouseID string `json:"warehouse_id"`

	Statement string `json:"statement"`

	Parameters []StatementParameter `json:"parameters,omitempty"`

	WaitTimeout   string `json:"wait_timeout,omitempty"`
	OnWaitTimeout string `json:"on_wait_timeout,omitempty"`
}

type StatementParameter struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Type  string `json:"type,omitempty"`
}

type StatementResponse struct {
	StatementID string `json:"statement_id"`

	Status StatementStatus `json:"status"`

	Result *StatementResult `json:"result"`
}

type StatementStatus struct {
	State StatementState `json:"state"`

	Error *StatementError `json:"error"`
}

type StatementError struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

type StatementResult struct {
	DataArray [][]string `json:"data_array"`
}

// ParseDocumentResult is the JSON shape returned by ai_parse_document.
type ParseDocumentResult struct {
	Document struct {
		Elements []Element `json:"elements"`
	} `json:"document"`

	Metadata struct {
		Warnings []Warning `json:"warnings"`
	} `json:"metadata"`
}

type Element struct {
	Type string `json:"type"`
	Text string `json:"content"`

	PageID int `json:"page_id"`
}

type Warning struct {
	Message string `json:"message"`
}
