package dialog

// State identifies a step of the greeting conversation.
type State string

const (
	// StateIdle indicates there is no active conversation with the user.
	StateIdle State = "idle"
	// StateAwaitingRecipient waits for the recipient @handle.
	StateAwaitingRecipient State = "awaiting_recipient"
	// StateAwaitingDisclosure waits for the anonymity choice.
	StateAwaitingDisclosure State = "awaiting_disclosure"
	// StateAwaitingText waits for the greeting text.
	StateAwaitingText State = "awaiting_text"
	// StateClosed rejects further input while a delivery attempt is in flight.
	StateClosed State = "closed"
)

// Session holds the transient conversation state for one user. It lives only
// in memory and is exclusively owned by the Controller for that user id.
//
// Invariant: in StateAwaitingDisclosure and later states RecipientID is a
// valid registered id distinct from the owning user's id.
type Session struct {
	State       State
	RecipientID int64
	Anonymous   bool
}

// Sender describes the user driving the conversation, as observed on the
// incoming event. The id is the stable platform-assigned identifier.
type Sender struct {
	ID          int64
	Handle      string
	DisplayName string
}
