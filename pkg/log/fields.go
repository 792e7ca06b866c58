package log

const (
	// Request
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldLatency   = "latency_ms"
	FieldClientIP  = "client_ip"

	// Query session (set by the session handlers)
	FieldSessionID = "session_id"
	FieldScreen    = "screen"

	// Service
	FieldService = "service"
)
