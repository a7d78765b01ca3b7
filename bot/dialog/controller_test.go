package dialog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/m3rciful/greetbot/core/telegram/state"
)

type fakeDirectory struct {
	users       map[string]int64
	known       map[int64]bool
	registerErr error
	resolveErr  error
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		users: make(map[string]int64),
		known: make(map[int64]bool),
	}
}

func (d *fakeDirectory) add(handle string, id int64) {
	d.users[strings.ToLower(handle)] = id
	d.known[id] = true
}

func (d *fakeDirectory) Register(_ context.Context, sender Sender) (bool, error) {
	if d.registerErr != nil {
		return false, d.registerErr
	}
	created := !d.known[sender.ID]
	d.known[sender.ID] = true
	if sender.Handle != "" {
		d.users[strings.ToLower(sender.Handle)] = sender.ID
	}
	return created, nil
}

func (d *fakeDirectory) ResolveHandle(_ context.Context, handle string) (int64, bool, error) {
	if d.resolveErr != nil {
		return 0, false, d.resolveErr
	}
	key := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(handle), "@"))
	id, ok := d.users[key]
	return id, ok, nil
}

type ledgerEntry struct {
	senderID    int64
	recipientID int64
	text        string
	anonymous   bool
}

type fakeLedger struct {
	entries []ledgerEntry
	err     error
}

func (l *fakeLedger) Record(_ context.Context, senderID, recipientID int64, text string, anonymous bool) error {
	if l.err != nil {
		return l.err
	}
	l.entries = append(l.entries, ledgerEntry{senderID, recipientID, text, anonymous})
	return nil
}

type sentMessage struct {
	recipientID int64
	text        string
}

type fakeMessenger struct {
	sent []sentMessage
	err  error
}

func (m *fakeMessenger) Send(_ context.Context, recipientID int64, text string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMessage{recipientID, text})
	return nil
}

type promptRecorder struct {
	prompts []Prompt
}

func (r *promptRecorder) Notify(_ context.Context, p Prompt) error {
	r.prompts = append(r.prompts, p)
	return nil
}

func (r *promptRecorder) last() Prompt {
	if len(r.prompts) == 0 {
		return Prompt(-1)
	}
	return r.prompts[len(r.prompts)-1]
}

type fixture struct {
	ctrl      *Controller
	dir       *fakeDirectory
	ledger    *fakeLedger
	messenger *fakeMessenger
	sessions  *state.Store[Session]
}

func newFixture() *fixture {
	dir := newFakeDirectory()
	ledger := &fakeLedger{}
	messenger := &fakeMessenger{}
	sessions := state.NewStore[Session]()
	ctrl := NewController(dir, ledger, sessions)
	ctrl.BindMessenger(messenger)
	return &fixture{ctrl: ctrl, dir: dir, ledger: ledger, messenger: messenger, sessions: sessions}
}

var alice = Sender{ID: 1, Handle: "alice", DisplayName: "Alice"}

func TestControllerHappyPathDisclosed(t *testing.T) {
	f := newFixture()
	f.dir.add("bob", 2)
	ctx := context.Background()
	n := &promptRecorder{}

	if err := f.ctrl.HandleSend(ctx, alice, n); err != nil {
		t.Fatalf("send: %v", err)
	}
	if n.last() != PromptAskRecipient {
		t.Fatalf("prompt = %v, want ask recipient", n.last())
	}

	if err := f.ctrl.HandleText(ctx, alice, "@Bob", n); err != nil {
		t.Fatalf("recipient: %v", err)
	}
	if n.last() != PromptChooseDisclosure {
		t.Fatalf("prompt = %v, want choose disclosure", n.last())
	}

	if err := f.ctrl.HandleSelection(ctx, alice, false, n); err != nil {
		t.Fatalf("selection: %v", err)
	}
	if n.last() != PromptAskText {
		t.Fatalf("prompt = %v, want ask text", n.last())
	}

	if err := f.ctrl.HandleText(ctx, alice, "happy birthday!", n); err != nil {
		t.Fatalf("text: %v", err)
	}
	if n.last() != PromptDelivered {
		t.Fatalf("prompt = %v, want delivered", n.last())
	}

	if len(f.messenger.sent) != 1 {
		t.Fatalf("sent = %d messages, want 1", len(f.messenger.sent))
	}
	msg := f.messenger.sent[0]
	if msg.recipientID != 2 {
		t.Fatalf("recipient = %d, want 2", msg.recipientID)
	}
	if !strings.Contains(msg.text, "happy birthday!") {
		t.Fatalf("message body missing: %q", msg.text)
	}
	if !strings.Contains(msg.text, "@alice") {
		t.Fatalf("disclosed message must name the sender: %q", msg.text)
	}

	if len(f.ledger.entries) != 1 {
		t.Fatalf("ledger = %d rows, want 1", len(f.ledger.entries))
	}
	entry := f.ledger.entries[0]
	if entry.senderID != 1 || entry.recipientID != 2 || entry.text != "happy birthday!" || entry.anonymous {
		t.Fatalf("ledger row = %+v", entry)
	}

	if f.ctrl.InProgress(alice.ID) {
		t.Fatal("session must be reset after delivery")
	}
}

func TestControllerAnonymousDelivery(t *testing.T) {
	f := newFixture()
	f.dir.add("bob", 2)
	ctx := context.Background()
	n := &promptRecorder{}

	_ = f.ctrl.HandleSend(ctx, alice, n)
	_ = f.ctrl.HandleText(ctx, alice, "@bob", n)
	_ = f.ctrl.HandleSelection(ctx, alice, true, n)
	if err := f.ctrl.HandleText(ctx, alice, "guess who", n); err != nil {
		t.Fatalf("text: %v", err)
	}

	if len(f.messenger.sent) != 1 {
		t.Fatalf("sent = %d messages, want 1", len(f.messenger.sent))
	}
	msg := f.messenger.sent[0].text
	if strings.Contains(msg, "alice") || strings.Contains(msg, "Alice") {
		t.Fatalf("anonymous message leaks sender: %q", msg)
	}
	if len(f.ledger.entries) != 1 || !f.ledger.entries[0].anonymous {
		t.Fatalf("ledger = %+v", f.ledger.entries)
	}
}

func TestControllerRecipientNotFound(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	n := &promptRecorder{}

	_ = f.ctrl.HandleSend(ctx, alice, n)
	if err := f.ctrl.HandleText(ctx, alice, "@ghost", n); err != nil {
		t.Fatalf("text: %v", err)
	}
	if n.last() != PromptRecipientNotFound {
		t.Fatalf("prompt = %v, want not found", n.last())
	}
	if !f.ctrl.InProgress(alice.ID) {
		t.Fatal("dialogue must stay open for another attempt")
	}

	// The same dialogue accepts a valid handle afterwards.
	f.dir.add("bob", 2)
	if err := f.ctrl.HandleText(ctx, alice, "@bob", n); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if n.last() != PromptChooseDisclosure {
		t.Fatalf("prompt = %v, want choose disclosure", n.last())
	}
}

func TestControllerSelfRecipient(t *testing.T) {
	f := newFixture()
	f.dir.add("alice", 1)
	ctx := context.Background()
	n := &promptRecorder{}

	_ = f.ctrl.HandleSend(ctx, alice, n)
	if err := f.ctrl.HandleText(ctx, alice, "@alice", n); err != nil {
		t.Fatalf("text: %v", err)
	}
	if n.last() != PromptSelfRecipient {
		t.Fatalf("prompt = %v, want self recipient", n.last())
	}
	if !f.ctrl.InProgress(alice.ID) {
		t.Fatal("dialogue must stay open")
	}
}

func TestControllerDeliveryFailure(t *testing.T) {
	f := newFixture()
	f.dir.add("bob", 2)
	f.messenger.err = errors.New("blocked by recipient")
	ctx := context.Background()
	n := &promptRecorder{}

	_ = f.ctrl.HandleSend(ctx, alice, n)
	_ = f.ctrl.HandleText(ctx, alice, "@bob", n)
	_ = f.ctrl.HandleSelection(ctx, alice, false, n)

	err := f.ctrl.HandleText(ctx, alice, "hello", n)
	if err == nil {
		t.Fatal("expected delivery error")
	}
	if n.last() != PromptDeliveryFailed {
		t.Fatalf("prompt = %v, want delivery failed", n.last())
	}
	if len(f.ledger.entries) != 0 {
		t.Fatalf("failed delivery must not be recorded: %+v", f.ledger.entries)
	}
	if f.ctrl.InProgress(alice.ID) {
		t.Fatal("session must be reset after failure")
	}

	// A fresh cycle succeeds once delivery works again.
	f.messenger.err = nil
	_ = f.ctrl.HandleSend(ctx, alice, n)
	_ = f.ctrl.HandleText(ctx, alice, "@bob", n)
	_ = f.ctrl.HandleSelection(ctx, alice, false, n)
	if err := f.ctrl.HandleText(ctx, alice, "hello again", n); err != nil {
		t.Fatalf("retry cycle: %v", err)
	}
	if len(f.ledger.entries) != 1 {
		t.Fatalf("ledger = %d rows, want 1", len(f.ledger.entries))
	}
}

func TestControllerLedgerFailureDoesNotFailDelivery(t *testing.T) {
	f := newFixture()
	f.dir.add("bob", 2)
	f.ledger.err = errors.New("db down")
	ctx := context.Background()
	n := &promptRecorder{}

	_ = f.ctrl.HandleSend(ctx, alice, n)
	_ = f.ctrl.HandleText(ctx, alice, "@bob", n)
	_ = f.ctrl.HandleSelection(ctx, alice, false, n)
	if err := f.ctrl.HandleText(ctx, alice, "hello", n); err != nil {
		t.Fatalf("delivery must succeed despite ledger failure: %v", err)
	}
	if n.last() != PromptDelivered {
		t.Fatalf("prompt = %v, want delivered", n.last())
	}
}

func TestControllerAlreadySent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	n := &promptRecorder{}

	// A dialogue frozen mid-delivery answers every input the same way.
	f.sessions.Set(alice.ID, Session{State: StateClosed, RecipientID: 2})

	if err := f.ctrl.HandleText(ctx, alice, "one more thing", n); err != nil {
		t.Fatalf("text: %v", err)
	}
	if n.last() != PromptAlreadySent {
		t.Fatalf("prompt = %v, want already sent", n.last())
	}

	if err := f.ctrl.HandleSelection(ctx, alice, true, n); err != nil {
		t.Fatalf("selection: %v", err)
	}
	if n.last() != PromptAlreadySent {
		t.Fatalf("prompt = %v, want already sent", n.last())
	}
}

func TestControllerRegisterIdempotent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	n := &promptRecorder{}

	if err := f.ctrl.HandleStart(ctx, alice, n); err != nil {
		t.Fatalf("first start: %v", err)
	}
	if n.last() != PromptWelcome {
		t.Fatalf("prompt = %v, want welcome", n.last())
	}

	if err := f.ctrl.HandleStart(ctx, alice, n); err != nil {
		t.Fatalf("second start: %v", err)
	}
	if n.last() != PromptWelcomeBack {
		t.Fatalf("prompt = %v, want welcome back", n.last())
	}
}

func TestControllerRegisterFailure(t *testing.T) {
	f := newFixture()
	f.dir.registerErr = errors.New("db down")
	ctx := context.Background()
	n := &promptRecorder{}

	if err := f.ctrl.HandleStart(ctx, alice, n); err == nil {
		t.Fatal("expected registration error")
	}
	if n.last() != PromptInternalError {
		t.Fatalf("prompt = %v, want internal error", n.last())
	}
}

func TestControllerResolveFailure(t *testing.T) {
	f := newFixture()
	f.dir.resolveErr = errors.New("db down")
	ctx := context.Background()
	n := &promptRecorder{}

	_ = f.ctrl.HandleSend(ctx, alice, n)
	if err := f.ctrl.HandleText(ctx, alice, "@bob", n); err == nil {
		t.Fatal("expected resolve error")
	}
	if n.last() != PromptInternalError {
		t.Fatalf("prompt = %v, want internal error", n.last())
	}
}

func TestControllerCancel(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	n := &promptRecorder{}

	if err := f.ctrl.HandleCancel(ctx, alice, n); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if n.last() != PromptNothingToCancel {
		t.Fatalf("prompt = %v, want nothing to cancel", n.last())
	}

	_ = f.ctrl.HandleSend(ctx, alice, n)
	if err := f.ctrl.HandleCancel(ctx, alice, n); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if n.last() != PromptCancelled {
		t.Fatalf("prompt = %v, want cancelled", n.last())
	}
	if f.ctrl.InProgress(alice.ID) {
		t.Fatal("cancel must reset the session")
	}
}

func TestControllerUnboundMessenger(t *testing.T) {
	dir := newFakeDirectory()
	dir.add("bob", 2)
	ledger := &fakeLedger{}
	sessions := state.NewStore[Session]()
	ctrl := NewController(dir, ledger, sessions)
	ctx := context.Background()
	n := &promptRecorder{}

	_ = ctrl.HandleSend(ctx, alice, n)
	_ = ctrl.HandleText(ctx, alice, "@bob", n)
	_ = ctrl.HandleSelection(ctx, alice, false, n)
	if err := ctrl.HandleText(ctx, alice, "hello", n); err != nil {
		t.Fatalf("text: %v", err)
	}
	if n.last() != PromptDeliveryFailed {
		t.Fatalf("prompt = %v, want delivery failed", n.last())
	}
	if len(ledger.entries) != 0 {
		t.Fatalf("ledger = %+v, want empty", ledger.entries)
	}
}
