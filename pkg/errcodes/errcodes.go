package errcodes

// ErrorCode is a stable machine-readable identifier attached to domain errors.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

const (
	InternalError          ErrorCode = "InternalError"
	ConfigInvalid          ErrorCode = "ConfigInvalid"
	CatalogUnavailable     ErrorCode = "CatalogUnavailable"
	BalanceUnavailable     ErrorCode = "BalanceUnavailable"
	SnapshotCorrupted      ErrorCode = "SnapshotCorrupted"
	SnapshotWriteFailed    ErrorCode = "SnapshotWriteFailed"
	PeerNotResolved        ErrorCode = "PeerNotResolved"
	PaymentFormUnavailable ErrorCode = "PaymentFormUnavailable"
	GiftSendFailed         ErrorCode = "GiftSendFailed"
	NotificationFailed     ErrorCode = "NotificationFailed"
)
