package dialog

import "fmt"

// DeliveryError indicates the greeting could not be handed to the recipient,
// typically because the recipient never started the bot or blocked it. Any
// transport-level failure is converted into this single kind.
type DeliveryError struct {
	RecipientID int64
	Err         error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver greeting to %d: %v", e.RecipientID, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// Code classifies the error for handler summary logs.
func (e *DeliveryError) Code() string { return "DELIVERY_ERROR" }
