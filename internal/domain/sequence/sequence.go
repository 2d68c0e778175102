// Package sequence names the generator of human-readable document numbers.
package sequence

import "context"

const (
	PrefixLoan    = "LN"
	PrefixPayment = "PMT"
)

// Generator hands out unique numbers such as "LN-20261016-000042". The core treats the
// result as an opaque token.
type Generator interface {
	Next(ctx context.Context, prefix string) (string, error)
}
