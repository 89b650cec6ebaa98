package handler

// ResponseKind tells callers what a Response carries.
type ResponseKind string

const (
	// KindTable — the operation produced a result set.
	KindTable ResponseKind = "table"

	// KindOK — the operation succeeded and produced no rows.
	KindOK ResponseKind = "ok"

	// KindError — the operation failed; see ErrorMessage.
	KindError ResponseKind = "error"
)

// Response is the uniform result of a handler operation.
// For KindTable, Columns and Rows are populated; Rows[i][j] holds the
// Go-native value of column j in row i.
type Response struct {
	Kind         ResponseKind `json:"kind"`
	Columns      []string     `json:"columns,omitempty"`
	Rows         [][]any      `json:"rows,omitempty"`
	ErrorMessage string       `json:"error_message,omitempty"`
}

// TableResponse builds a KindTable response. Rows may be nil for an
// empty result set.
func TableResponse(columns []string, rows [][]any) *Response {
	if rows == nil {
		rows = [][]any{}
	}
	return &Response{Kind: KindTable, Columns: columns, Rows: rows}
}

// OKResponse builds a KindOK response for statements without a result set.
func OKResponse() *Response {
	return &Response{Kind: KindOK}
}

// ErrorResponse builds a KindError response carrying the failure message.
func ErrorResponse(msg string) *Response {
	return &Response{Kind: KindError, ErrorMessage: msg}
}

// StatusResponse is the result of Handler.CheckConnection.
type StatusResponse struct {
	Success      bool   `json:"success"`
	ErrorMessage string `json:"error_message,omitempty"`
}
