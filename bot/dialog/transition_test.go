package dialog

import (
	"reflect"
	"testing"
)

func TestTransitionCommands(t *testing.T) {
	tests := []struct {
		name    string
		sess    Session
		ev      Event
		want    Session
		effects []Effect
	}{
		{
			name:    "start from idle",
			sess:    Session{State: StateIdle},
			ev:      StartCommand{},
			want:    Session{State: StateIdle},
			effects: []Effect{RegisterSender{}, Welcome{}},
		},
		{
			name:    "start discards dialogue in progress",
			sess:    Session{State: StateAwaitingText, RecipientID: 7, Anonymous: true},
			ev:      StartCommand{},
			want:    Session{State: StateIdle},
			effects: []Effect{RegisterSender{}, Welcome{}},
		},
		{
			name:    "send from idle",
			sess:    Session{State: StateIdle},
			ev:      SendCommand{},
			want:    Session{State: StateAwaitingRecipient},
			effects: []Effect{RegisterSender{}, Notify{Prompt: PromptAskRecipient}},
		},
		{
			name:    "send restarts dialogue in progress",
			sess:    Session{State: StateAwaitingDisclosure, RecipientID: 7},
			ev:      SendCommand{},
			want:    Session{State: StateAwaitingRecipient},
			effects: []Effect{RegisterSender{}, Notify{Prompt: PromptAskRecipient}},
		},
		{
			name:    "cancel with nothing in progress",
			sess:    Session{State: StateIdle},
			ev:      CancelCommand{},
			want:    Session{State: StateIdle},
			effects: []Effect{Notify{Prompt: PromptNothingToCancel}},
		},
		{
			name:    "cancel aborts dialogue",
			sess:    Session{State: StateAwaitingText, RecipientID: 7},
			ev:      CancelCommand{},
			want:    Session{State: StateIdle},
			effects: []Effect{Notify{Prompt: PromptCancelled}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, effects := Transition(tt.sess, tt.ev)
			if got != tt.want {
				t.Fatalf("session = %+v, want %+v", got, tt.want)
			}
			if !reflect.DeepEqual(effects, tt.effects) {
				t.Fatalf("effects = %+v, want %+v", effects, tt.effects)
			}
		})
	}
}

func TestTransitionAwaitingRecipient(t *testing.T) {
	sess := Session{State: StateAwaitingRecipient}

	tests := []struct {
		name    string
		ev      Event
		want    Session
		effects []Effect
	}{
		{
			name:    "text without at sign re-prompts",
			ev:      TextInput{Text: "bob"},
			want:    sess,
			effects: []Effect{Notify{Prompt: PromptBadHandle}},
		},
		{
			name:    "blank text re-prompts",
			ev:      TextInput{Text: "   "},
			want:    sess,
			effects: []Effect{Notify{Prompt: PromptBadHandle}},
		},
		{
			name:    "handle triggers resolution",
			ev:      TextInput{Text: "  @Bob  "},
			want:    sess,
			effects: []Effect{ResolveRecipient{Handle: "@Bob"}},
		},
		{
			name:    "resolved advances to disclosure",
			ev:      RecipientResolved{RecipientID: 42},
			want:    Session{State: StateAwaitingDisclosure, RecipientID: 42},
			effects: []Effect{Notify{Prompt: PromptChooseDisclosure}},
		},
		{
			name:    "miss re-prompts in place",
			ev:      RecipientNotFound{Handle: "@ghost"},
			want:    sess,
			effects: []Effect{Notify{Prompt: PromptRecipientNotFound}},
		},
		{
			name:    "self target re-prompts in place",
			ev:      SelfRecipient{},
			want:    sess,
			effects: []Effect{Notify{Prompt: PromptSelfRecipient}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, effects := Transition(sess, tt.ev)
			if got != tt.want {
				t.Fatalf("session = %+v, want %+v", got, tt.want)
			}
			if !reflect.DeepEqual(effects, tt.effects) {
				t.Fatalf("effects = %+v, want %+v", effects, tt.effects)
			}
		})
	}
}

func TestTransitionAwaitingDisclosure(t *testing.T) {
	sess := Session{State: StateAwaitingDisclosure, RecipientID: 42}

	got, effects := Transition(sess, Selection{Anonymous: true})
	want := Session{State: StateAwaitingText, RecipientID: 42, Anonymous: true}
	if got != want {
		t.Fatalf("session = %+v, want %+v", got, want)
	}
	if !reflect.DeepEqual(effects, []Effect{Notify{Prompt: PromptAskText}}) {
		t.Fatalf("effects = %+v", effects)
	}

	got, effects = Transition(sess, TextInput{Text: "anonymously please"})
	if got != sess {
		t.Fatalf("free text must not advance disclosure: %+v", got)
	}
	if !reflect.DeepEqual(effects, []Effect{Notify{Prompt: PromptPickFromOptions}}) {
		t.Fatalf("effects = %+v", effects)
	}
}

func TestTransitionAwaitingText(t *testing.T) {
	sess := Session{State: StateAwaitingText, RecipientID: 42, Anonymous: true}

	got, effects := Transition(sess, TextInput{Text: "  "})
	if got != sess {
		t.Fatalf("empty text must not advance: %+v", got)
	}
	if !reflect.DeepEqual(effects, []Effect{Notify{Prompt: PromptEmptyText}}) {
		t.Fatalf("effects = %+v", effects)
	}

	got, effects = Transition(sess, TextInput{Text: " happy birthday! "})
	want := Session{State: StateClosed, RecipientID: 42, Anonymous: true}
	if got != want {
		t.Fatalf("session = %+v, want %+v", got, want)
	}
	wantEffects := []Effect{Deliver{RecipientID: 42, Anonymous: true, Text: "happy birthday!"}}
	if !reflect.DeepEqual(effects, wantEffects) {
		t.Fatalf("effects = %+v, want %+v", effects, wantEffects)
	}
}

func TestTransitionClosed(t *testing.T) {
	sess := Session{State: StateClosed, RecipientID: 42}

	got, effects := Transition(sess, TextInput{Text: "one more"})
	if got != sess {
		t.Fatalf("closed session must stay closed: %+v", got)
	}
	if !reflect.DeepEqual(effects, []Effect{Notify{Prompt: PromptAlreadySent}}) {
		t.Fatalf("effects = %+v", effects)
	}

	got, effects = Transition(sess, DeliverySucceeded{})
	if got.State != StateIdle {
		t.Fatalf("success must reset the session: %+v", got)
	}
	if !reflect.DeepEqual(effects, []Effect{Notify{Prompt: PromptDelivered}}) {
		t.Fatalf("effects = %+v", effects)
	}

	got, effects = Transition(sess, DeliveryFailed{})
	if got.State != StateIdle {
		t.Fatalf("failure must reset the session: %+v", got)
	}
	if !reflect.DeepEqual(effects, []Effect{Notify{Prompt: PromptDeliveryFailed}}) {
		t.Fatalf("effects = %+v", effects)
	}
}

func TestTransitionDropsStaleEvents(t *testing.T) {
	tests := []struct {
		name string
		sess Session
		ev   Event
	}{
		{"resolved while idle", Session{State: StateIdle}, RecipientResolved{RecipientID: 42}},
		{"resolved while awaiting text", Session{State: StateAwaitingText, RecipientID: 7}, RecipientResolved{RecipientID: 42}},
		{"selection while awaiting recipient", Session{State: StateAwaitingRecipient}, Selection{Anonymous: true}},
		{"selection while awaiting text", Session{State: StateAwaitingText, RecipientID: 7}, Selection{Anonymous: true}},
		{"delivery outcome while idle", Session{State: StateIdle}, DeliverySucceeded{}},
		{"delivery outcome while awaiting recipient", Session{State: StateAwaitingRecipient}, DeliveryFailed{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, effects := Transition(tt.sess, tt.ev)
			if got != tt.sess {
				t.Fatalf("stale event must not change session: %+v", got)
			}
			if len(effects) != 0 {
				t.Fatalf("stale event must not produce effects: %+v", effects)
			}
		})
	}
}

func TestTransitionIdleTextHints(t *testing.T) {
	got, effects := Transition(Session{State: StateIdle}, TextInput{Text: "hello?"})
	if got.State != StateIdle {
		t.Fatalf("session = %+v", got)
	}
	if !reflect.DeepEqual(effects, []Effect{Notify{Prompt: PromptHintSend}}) {
		t.Fatalf("effects = %+v", effects)
	}
}
