package dialog

import (
	"context"
	"log/slog"
	"sync"

	"github.com/m3rciful/greetbot/core/logger"
	"github.com/m3rciful/greetbot/core/telegram/state"
)

// Directory resolves and registers user identities.
type Directory interface {
	// Register upserts the sender and reports whether the row was created.
	Register(ctx context.Context, sender Sender) (created bool, err error)
	// ResolveHandle returns the user id stored under the handle. A miss is a
	// valid negative result, not an error.
	ResolveHandle(ctx context.Context, handle string) (id int64, found bool, err error)
}

// Ledger records delivered greetings. Append-only; no read path is needed by
// the conversation flow.
type Ledger interface {
	Record(ctx context.Context, senderID, recipientID int64, text string, anonymous bool) error
}

// Messenger delivers a text message to a user by id. A single bounded
// attempt; any failure is reported as *DeliveryError.
type Messenger interface {
	Send(ctx context.Context, recipientID int64, text string) error
}

// Notifier carries notices back to the user whose event is being processed.
// It is supplied per event by the transport layer.
type Notifier interface {
	Notify(ctx context.Context, prompt Prompt) error
}

// Controller drives the greeting dialogue for every user. Events for the
// same user id are serialized; the session read-modify-write is atomic with
// respect to other events for that id. No lock is held across the delivery
// call: the session is transitioned to Closed first instead.
type Controller struct {
	dir      Directory
	ledger   Ledger
	sessions *state.Store[Session]
	locks    *state.Locker

	mu        sync.RWMutex
	messenger Messenger
}

// NewController wires the conversation controller with its collaborators.
// The messenger is bound later, once the transport is up (see BindMessenger).
func NewController(dir Directory, ledger Ledger, sessions *state.Store[Session]) *Controller {
	return &Controller{
		dir:      dir,
		ledger:   ledger,
		sessions: sessions,
		locks:    state.NewLocker(),
	}
}

// BindMessenger attaches the delivery transport. Must be called before the
// first event is processed.
func (c *Controller) BindMessenger(m Messenger) {
	c.mu.Lock()
	c.messenger = m
	c.mu.Unlock()
}

func (c *Controller) currentMessenger() Messenger {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.messenger
}

// InProgress reports whether the user has an active (non-idle) session.
func (c *Controller) InProgress(userID int64) bool {
	sess, ok := c.sessions.Get(userID)
	return ok && sess.State != StateIdle
}

// HandleStart processes the start command.
func (c *Controller) HandleStart(ctx context.Context, sender Sender, n Notifier) error {
	return c.dispatch(ctx, sender, StartCommand{}, n)
}

// HandleSend processes the send command, discarding any in-flight dialogue.
func (c *Controller) HandleSend(ctx context.Context, sender Sender, n Notifier) error {
	return c.dispatch(ctx, sender, SendCommand{}, n)
}

// HandleCancel aborts the dialogue in progress.
func (c *Controller) HandleCancel(ctx context.Context, sender Sender, n Notifier) error {
	return c.dispatch(ctx, sender, CancelCommand{}, n)
}

// HandleText processes a free-text message according to the current state.
func (c *Controller) HandleText(ctx context.Context, sender Sender, text string, n Notifier) error {
	return c.dispatch(ctx, sender, TextInput{Text: text}, n)
}

// HandleSelection processes a disclosure menu choice.
func (c *Controller) HandleSelection(ctx context.Context, sender Sender, anonymous bool, n Notifier) error {
	return c.dispatch(ctx, sender, Selection{Anonymous: anonymous}, n)
}

func (c *Controller) dispatch(ctx context.Context, sender Sender, ev Event, n Notifier) error {
	unlock := c.locks.Lock(sender.ID)
	sess, ok := c.sessions.Get(sender.ID)
	if !ok {
		sess = Session{State: StateIdle}
	}

	next, effects := Transition(sess, ev)
	if next.State == StateIdle {
		c.sessions.Clear(sender.ID)
	} else {
		c.sessions.Set(sender.ID, next)
	}
	unlock()

	if sess.State != next.State {
		logger.Debug(ctx, "dialog", "fsm.transition",
			slog.Int64("user_id", sender.ID),
			slog.String("from_state", string(sess.State)),
			slog.String("to_state", string(next.State)),
			slog.String("op", ev.Kind()),
		)
	}

	return c.execute(ctx, sender, effects, n)
}

func (c *Controller) execute(ctx context.Context, sender Sender, effects []Effect, n Notifier) error {
	var registeredBefore bool
	for _, eff := range effects {
		switch e := eff.(type) {
		case RegisterSender:
			created, err := c.dir.Register(ctx, sender)
			if err != nil {
				_ = n.Notify(ctx, PromptInternalError)
				return err
			}
			registeredBefore = !created

		case Welcome:
			prompt := PromptWelcome
			if registeredBefore {
				prompt = PromptWelcomeBack
			}
			if err := n.Notify(ctx, prompt); err != nil {
				return err
			}

		case Notify:
			if err := n.Notify(ctx, e.Prompt); err != nil {
				return err
			}

		case ResolveRecipient:
			id, found, err := c.dir.ResolveHandle(ctx, e.Handle)
			if err != nil {
				_ = n.Notify(ctx, PromptInternalError)
				return err
			}
			var next Event
			switch {
			case !found:
				next = RecipientNotFound{Handle: e.Handle}
			case id == sender.ID:
				next = SelfRecipient{}
			default:
				next = RecipientResolved{RecipientID: id}
			}
			return c.dispatch(ctx, sender, next, n)

		case Deliver:
			return c.deliver(ctx, sender, e, n)
		}
	}
	return nil
}

// deliver runs the single delivery attempt and feeds the outcome back into
// the state machine. The ledger row is written directly on success so a
// racing restart cannot lose the record of an already-delivered greeting.
func (c *Controller) deliver(ctx context.Context, sender Sender, e Deliver, n Notifier) error {
	m := c.currentMessenger()
	if m == nil {
		logger.Error(ctx, "dialog", "deliver.unbound",
			slog.Int64("user_id", sender.ID),
			slog.Int64("recipient_id", e.RecipientID),
		)
		return c.dispatch(ctx, sender, DeliveryFailed{}, n)
	}

	text := ComposeGreeting(e.Text, e.Anonymous, sender)
	if err := m.Send(ctx, e.RecipientID, text); err != nil {
		logger.Warn(ctx, "dialog", "deliver.fail",
			slog.Int64("user_id", sender.ID),
			slog.Int64("recipient_id", e.RecipientID),
			slog.Bool("anonymous", e.Anonymous),
			slog.String("err", err.Error()),
		)
		if dispatchErr := c.dispatch(ctx, sender, DeliveryFailed{}, n); dispatchErr != nil {
			return dispatchErr
		}
		return err
	}

	if err := c.ledger.Record(ctx, sender.ID, e.RecipientID, e.Text, e.Anonymous); err != nil {
		// The greeting already reached the recipient; losing the ledger row
		// must not fail the conversation.
		logger.Warn(ctx, "dialog", "ledger.record.fail",
			slog.Int64("user_id", sender.ID),
			slog.Int64("recipient_id", e.RecipientID),
			slog.String("err", err.Error()),
		)
	}

	logger.Info(ctx, "dialog", "deliver.ok",
		slog.Int64("user_id", sender.ID),
		slog.Int64("recipient_id", e.RecipientID),
		slog.Bool("anonymous", e.Anonymous),
	)
	return c.dispatch(ctx, sender, DeliverySucceeded{}, n)
}
