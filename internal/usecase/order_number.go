package usecase

import "fmt"

// Order numbers are the customer-facing reference: a literal prefix and
// a zero-padded sequence value. The sequence comes from an atomic
// counter document, so concurrent checkouts cannot collide.
const orderNumberPrefix = "ORD"

const orderSequence = "orders"

func FormatOrderNumber(seq int64) string {
	return fmt.Sprintf("%s%06d", orderNumberPrefix, seq)
}
