package repository

import "context"

// NotifierRepository transmits a rendered report to the messaging channel.
type NotifierRepository interface {
	Deliver(ctx context.Context, text string) error
}
