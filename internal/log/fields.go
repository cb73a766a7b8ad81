package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldClientIP  = "client_ip"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldDuration  = "duration_ms"
	FieldUserAgent = "user_agent"
	FieldError     = "error"
	FieldOperation = "operation"
	FieldMode      = "mode"
	FieldUserID    = "uid"
	FieldAccountID = "account_id"
	FieldCategory  = "category"
	FieldAmount    = "amount"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentSession = "session"
	ComponentStore   = "store"
	ComponentAuth    = "auth"
	ComponentAdvice  = "advice"
	ComponentWidgets = "widgets"
)
