package dialog

import "strings"

// Transition is the pure state machine of the greeting dialogue: given the
// current session and an event it returns the next session and the effects
// to execute. It performs no I/O and never fails; invalid input is answered
// with a re-prompt in place, stale feedback events are dropped.
func Transition(sess Session, ev Event) (Session, []Effect) {
	// Commands restart or abort the dialogue from any state.
	switch ev.(type) {
	case StartCommand:
		return Session{State: StateIdle}, []Effect{RegisterSender{}, Welcome{}}
	case SendCommand:
		return Session{State: StateAwaitingRecipient}, []Effect{RegisterSender{}, Notify{Prompt: PromptAskRecipient}}
	case CancelCommand:
		if sess.State == StateIdle {
			return sess, []Effect{Notify{Prompt: PromptNothingToCancel}}
		}
		return Session{State: StateIdle}, []Effect{Notify{Prompt: PromptCancelled}}
	}

	switch sess.State {
	case StateAwaitingRecipient:
		return awaitingRecipient(sess, ev)
	case StateAwaitingDisclosure:
		return awaitingDisclosure(sess, ev)
	case StateAwaitingText:
		return awaitingText(sess, ev)
	case StateClosed:
		return closed(sess, ev)
	default:
		if _, ok := ev.(TextInput); ok {
			return sess, []Effect{Notify{Prompt: PromptHintSend}}
		}
		return sess, nil
	}
}

func awaitingRecipient(sess Session, ev Event) (Session, []Effect) {
	switch e := ev.(type) {
	case TextInput:
		handle := strings.TrimSpace(e.Text)
		if !strings.HasPrefix(handle, "@") {
			return sess, []Effect{Notify{Prompt: PromptBadHandle}}
		}
		return sess, []Effect{ResolveRecipient{Handle: handle}}
	case RecipientResolved:
		next := Session{State: StateAwaitingDisclosure, RecipientID: e.RecipientID}
		return next, []Effect{Notify{Prompt: PromptChooseDisclosure}}
	case RecipientNotFound:
		return sess, []Effect{Notify{Prompt: PromptRecipientNotFound}}
	case SelfRecipient:
		return sess, []Effect{Notify{Prompt: PromptSelfRecipient}}
	}
	return sess, nil
}

func awaitingDisclosure(sess Session, ev Event) (Session, []Effect) {
	switch e := ev.(type) {
	case Selection:
		next := Session{State: StateAwaitingText, RecipientID: sess.RecipientID, Anonymous: e.Anonymous}
		return next, []Effect{Notify{Prompt: PromptAskText}}
	case TextInput:
		return sess, []Effect{Notify{Prompt: PromptPickFromOptions}}
	}
	return sess, nil
}

func awaitingText(sess Session, ev Event) (Session, []Effect) {
	switch e := ev.(type) {
	case TextInput:
		text := strings.TrimSpace(e.Text)
		if text == "" {
			return sess, []Effect{Notify{Prompt: PromptEmptyText}}
		}
		// Lock the dialogue before the delivery attempt starts.
		next := Session{State: StateClosed, RecipientID: sess.RecipientID, Anonymous: sess.Anonymous}
		return next, []Effect{Deliver{RecipientID: sess.RecipientID, Anonymous: sess.Anonymous, Text: text}}
	case Selection:
		return sess, nil
	}
	return sess, nil
}

func closed(sess Session, ev Event) (Session, []Effect) {
	switch ev.(type) {
	case DeliverySucceeded:
		return Session{State: StateIdle}, []Effect{Notify{Prompt: PromptDelivered}}
	case DeliveryFailed:
		return Session{State: StateIdle}, []Effect{Notify{Prompt: PromptDeliveryFailed}}
	case TextInput, Selection:
		return sess, []Effect{Notify{Prompt: PromptAlreadySent}}
	}
	return sess, nil
}
