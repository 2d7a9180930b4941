package logx

const (
	FieldAppName    = "app-name"
	FieldAppVersion = "app-version"
	FieldAddress    = "address"
	FieldBalance    = "balance"
	FieldChannel    = "channel"
	FieldCount      = "count"
	FieldDurationMs = "duration-ms"
	FieldError      = "error"
	FieldErrorClass = "error-class"
	FieldGiftID     = "gift-id"
	FieldHTTPMethod = "http-method"
	FieldIP         = "ip"
	FieldModule     = "module"
	FieldPrice      = "price"
	FieldPurchased  = "purchased"
	FieldQuantity   = "quantity"
	FieldReason     = "reason"
	FieldRecipient  = "recipient"
	FieldRecipients = "recipients"
	FieldRequested  = "requested"
	FieldStack      = "stack"
	FieldSupply     = "supply"
	FieldTraceID    = "trace-id"
	FieldURL        = "url"
	FieldUserID     = "user-id"
)
