package dto

// Envelope statuses.
const (
	StatusOK  = "OK"
	StatusErr = "ERR"
)

// Envelope wraps every successful response.
type Envelope struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
}

// ErrorEnvelope wraps every failed response.
type ErrorEnvelope struct {
	Status  string `json:"status"`
	ErrCode string `json:"errCode"`
	Message string `json:"message"`
}

// OK builds a success envelope; data may be nil for status-only replies.
func OK(data interface{}) Envelope {
	return Envelope{Status: StatusOK, Data: data}
}

// Err builds an error envelope.
func Err(code, message string) ErrorEnvelope {
	return ErrorEnvelope{Status: StatusErr, ErrCode: code, Message: message}
}
