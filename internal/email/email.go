package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/flightgds/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	fmt.Printf("notify user %s: booking %s %s (%s -> %s)\n",
		event.UserID, event.BookingID, event.Type, event.Origin, event.Destination)
	return nil
}
