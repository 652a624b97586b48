package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldStore      = "store"
	FieldCount      = "count"
	FieldMonth      = "month"
)

// Standard component names
const (
	ComponentApp      = "app"
	ComponentAPI      = "api"
	ComponentSession  = "session"
	ComponentStorage  = "storage"
	ComponentStore    = "store"
	ComponentSettings = "settings"
)
