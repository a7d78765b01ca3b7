package dialog

// Event is an input to the conversation state machine. Command and text
// events originate from the user; resolution and delivery events are fed
// back by the Controller after it has executed the corresponding effect.
type Event interface {
	// Kind names the event for transition logs.
	Kind() string
}

// StartCommand registers the sender and greets them.
type StartCommand struct{}

// SendCommand starts (or restarts) the greeting dialogue.
type SendCommand struct{}

// CancelCommand aborts the dialogue in progress, if any.
type CancelCommand struct{}

// TextInput is a free-text message from the user.
type TextInput struct {
	Text string
}

// Selection is a disclosure menu choice.
type Selection struct {
	Anonymous bool
}

// RecipientResolved reports a successful handle lookup.
type RecipientResolved struct {
	RecipientID int64
}

// RecipientNotFound reports that the handle matched no registered user.
type RecipientNotFound struct {
	Handle string
}

// SelfRecipient reports that the handle resolved to the sender themselves.
type SelfRecipient struct{}

// DeliverySucceeded reports that the greeting reached the recipient.
type DeliverySucceeded struct{}

// DeliveryFailed reports that the delivery attempt failed.
type DeliveryFailed struct{}

func (StartCommand) Kind() string      { return "start_command" }
func (SendCommand) Kind() string       { return "send_command" }
func (CancelCommand) Kind() string     { return "cancel_command" }
func (TextInput) Kind() string         { return "text_input" }
func (Selection) Kind() string         { return "selection" }
func (RecipientResolved) Kind() string { return "recipient_resolved" }
func (RecipientNotFound) Kind() string { return "recipient_not_found" }
func (SelfRecipient) Kind() string     { return "self_recipient" }
func (DeliverySucceeded) Kind() string { return "delivery_succeeded" }
func (DeliveryFailed) Kind() string    { return "delivery_failed" }
