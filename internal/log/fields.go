package log

// Common field names for structured logging.
const (
	FieldComponent     = "component"
	FieldRequestID     = "request_id"
	FieldClientIP      = "client_ip"
	FieldMethod        = "method"
	FieldPath          = "path"
	FieldStatusCode    = "status"
	FieldDuration      = "duration_ms"
	FieldError         = "error"
	FieldTransactionID = "id"
	FieldCategory      = "category"
	FieldAmountCents   = "amount_cents"
	FieldDate          = "date"
	FieldCount         = "count"
	FieldBlobKey       = "key"
	FieldBackend       = "backend"
)

// Standard component names.
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentLedger  = "ledger"
	ComponentGateway = "gateway"
	ComponentStorage = "storage"
	ComponentReport  = "report"
)
