package appointment

// ===============================
// Payment Method
// ===============================

type PaymentMethod string

const (
	MethodPix    PaymentMethod = "pix"
	MethodCredit PaymentMethod = "credit"
	MethodDebit  PaymentMethod = "debit"
	MethodCash   PaymentMethod = "cash"
	MethodOther  PaymentMethod = "other"
)

func IsValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case MethodPix, MethodCredit, MethodDebit, MethodCash, MethodOther:
		return true
	}
	return false
}
