package dialog

// Prompt identifies a user-facing notice emitted by the state machine. The
// transport layer maps prompts to concrete message texts and keyboards.
type Prompt int

const (
	// PromptWelcome greets a newly registered user.
	PromptWelcome Prompt = iota
	// PromptWelcomeBack greets a user who was already registered.
	PromptWelcomeBack
	// PromptAskRecipient asks for the recipient @handle.
	PromptAskRecipient
	// PromptBadHandle reports a handle without the "@" marker.
	PromptBadHandle
	// PromptRecipientNotFound reports an unregistered handle.
	PromptRecipientNotFound
	// PromptSelfRecipient rejects sending a greeting to oneself.
	PromptSelfRecipient
	// PromptChooseDisclosure presents the anonymity choice.
	PromptChooseDisclosure
	// PromptPickFromOptions nudges the user back to the disclosure menu.
	PromptPickFromOptions
	// PromptAskText asks for the greeting text.
	PromptAskText
	// PromptEmptyText rejects an empty greeting.
	PromptEmptyText
	// PromptDelivered confirms a successful delivery.
	PromptDelivered
	// PromptDeliveryFailed reports a failed delivery attempt.
	PromptDeliveryFailed
	// PromptAlreadySent rejects input after the greeting was submitted.
	PromptAlreadySent
	// PromptCancelled confirms the dialogue was aborted.
	PromptCancelled
	// PromptNothingToCancel reports there was no dialogue to abort.
	PromptNothingToCancel
	// PromptHintSend points an idle user at the send command.
	PromptHintSend
	// PromptInternalError reports a generic backend failure.
	PromptInternalError
)

// Effect is an action requested by a transition. Effects are executed by the
// Controller in order; Resolve and Deliver produce follow-up events that are
// fed back through the transition function.
type Effect interface {
	isEffect()
}

// RegisterSender upserts the sender into the user directory.
type RegisterSender struct{}

// Welcome emits the welcome notice matching the registration outcome.
type Welcome struct{}

// Notify sends a notice to the conversation owner.
type Notify struct {
	Prompt Prompt
}

// ResolveRecipient looks up a handle in the user directory.
type ResolveRecipient struct {
	Handle string
}

// Deliver attempts to hand the greeting to the recipient. The session is
// already Closed when this effect is executed, so a second rapid message
// cannot be accepted as another greeting while the attempt is in flight.
type Deliver struct {
	RecipientID int64
	Anonymous   bool
	Text        string
}

func (RegisterSender) isEffect()   {}
func (Welcome) isEffect()          {}
func (Notify) isEffect()           {}
func (ResolveRecipient) isEffect() {}
func (Deliver) isEffect()          {}
