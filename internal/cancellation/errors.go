package cancellation

import "fmt"

// AlreadyCancelledError reports a ticket that cannot be cancelled: it is
// already cancelled, its status is otherwise not SOLD, or the trip has
// already departed. Reason says which.
type AlreadyCancelledError struct {
	TicketID uint
	Reason   string
}

func (e *AlreadyCancelledError) Error() string {
	return fmt.Sprintf("ticket %d cannot be cancelled: %s", e.TicketID, e.Reason)
}
