package entity

// FailureClass classifies a platform error raised by a gift purchase.
type FailureClass string

const (
	FailureNone              FailureClass = ""
	FailureInsufficientFunds FailureClass = "insufficient_funds"
	FailureSoldOut           FailureClass = "sold_out"
	FailureInvalidRecipient  FailureClass = "invalid_recipient"
	FailureUnknown           FailureClass = "unknown"
)

// PurchaseOutcome summarizes one recipient's purchase run for one gift.
type PurchaseOutcome struct {
	GiftID             int64
	Recipient          PeerRef
	RecipientLabel     string
	RequestedQuantity  int
	AffordableQuantity int
	PurchasedQuantity  int
	UnitPrice          int64
	BalanceBefore      int64
	BalanceAfter       int64
	StoppedEarly       bool
	Failure            FailureClass
	Err                error
}

func (o PurchaseOutcome) Shortfall() int {
	return o.RequestedQuantity - o.PurchasedQuantity
}

func (o PurchaseOutcome) Complete() bool {
	return o.PurchasedQuantity == o.RequestedQuantity && !o.StoppedEarly
}
