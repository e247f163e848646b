package enums

// TransactionStatus tracks the payment record attached to an order.
type TransactionStatus string

const (
	TransactionStatusPending  TransactionStatus = "pending"
	TransactionStatusApproved TransactionStatus = "approved"
	TransactionStatusDeclined TransactionStatus = "declined"
	TransactionStatusRefunded TransactionStatus = "refunded"
)

// String implements fmt.Stringer.
func (t TransactionStatus) String() string {
	return string(t)
}
