// Package notify delivers the daily message to subscribers over SMS.
package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Sender delivers one message to one destination.
type Sender interface {
	Send(ctx context.Context, to, body string) error
}

// Delivery is the outcome of a Notify call. Err joins every per-recipient
// failure and is nil when all sends succeeded.
type Delivery struct {
	Sent   int
	Failed int
	Err    error
}

type Notifier struct {
	sender Sender
}

func NewNotifier(sender Sender) *Notifier {
	return &Notifier{sender: sender}
}

// Notify sends body to every recipient, one call each. A failed recipient
// does not stop the others.
func (n *Notifier) Notify(ctx context.Context, body string, recipients []string) Delivery {
	logger := zerolog.Ctx(ctx)

	var (
		d    Delivery
		errs []error
	)
	for _, to := range recipients {
		if err := n.sender.Send(ctx, to, body); err != nil {
			logger.Error().Err(err).Str("to", to).Msg("failed to send message")
			errs = append(errs, fmt.Errorf("send to %s: %w", to, err))
			d.Failed++
			continue
		}
		d.Sent++
	}
	d.Err = errors.Join(errs...)

	logger.Info().Int("sent", d.Sent).Int("failed", d.Failed).Msg("notification finished")
	return d
}
