// Package handlers binds the greeting dialogue to the Telegram runtime:
// commands, disclosure callbacks, the FSM text route, and fallbacks.
package handlers

import (
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/greetbot/bot/dialog"
	"github.com/m3rciful/greetbot/bot/service"
	tg "github.com/m3rciful/greetbot/core/telegram"
	"github.com/m3rciful/greetbot/core/telegram/callbacks"
	"github.com/m3rciful/greetbot/core/telegram/commands"
	tghelpers "github.com/m3rciful/greetbot/core/telegram/helpers"
	"github.com/m3rciful/greetbot/core/telegram/router"
	"github.com/m3rciful/greetbot/core/telegram/state"
	"github.com/m3rciful/greetbot/core/telegram/ui"
)

// Set groups all bot handlers and their dependencies.
type Set struct {
	ctrl     *dialog.Controller
	users    *service.Users
	messages *service.Messages
	sessions *state.Store[dialog.Session]
}

var _ ui.FallbackProvider = (*Set)(nil)

// New constructs the handler set.
func New(ctrl *dialog.Controller, users *service.Users, messages *service.Messages, sessions *state.Store[dialog.Session]) *Set {
	return &Set{ctrl: ctrl, users: users, messages: messages, sessions: sessions}
}

// Register wires commands, callbacks, and fallbacks into the registry.
func (h *Set) Register(reg *tg.Registry) {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     h.Start,
		Description: "Register and learn how to send a greeting",
	})
	reg.RegisterCommand("/send", commands.Command{
		Handler:     h.Send,
		Description: "Send a greeting to a registered user",
	})
	reg.RegisterCommand("/cancel", commands.Command{
		Handler:     h.Cancel,
		Description: "Abort the dialogue in progress",
	})
	reg.RegisterCommand("/stats", commands.Command{
		Handler:     h.Stats,
		Description: "Show usage totals",
		AdminOnly:   true,
		Hidden:      true,
	})

	_ = reg.RegisterCallback(cbDisclosure, h.DisclosureCallback)
	_ = reg.RegisterCallback(cbCancel, h.CancelCallback)

	reg.SetTextFallback(h.UnknownText())
	reg.SetCallbackNotFound(h.UnknownCallback())
}

// FSM exposes the conversation controller to the message router.
func (h *Set) FSM() router.FSM {
	return fsmAdapter{ctrl: h.ctrl}
}

func senderFrom(c tele.Context) dialog.Sender {
	u := c.Sender()
	if u == nil {
		return dialog.Sender{}
	}
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	return dialog.Sender{ID: u.ID, Handle: u.Username, DisplayName: name}
}

// Start registers the sender and explains the send flow.
func (h *Set) Start(c tele.Context) error {
	ctx := tghelpers.WithHandler(c, "start")
	return h.ctrl.HandleStart(ctx, senderFrom(c), replyNotifier{c: c})
}

// Send starts the greeting dialogue, discarding any in-flight one.
func (h *Set) Send(c tele.Context) error {
	ctx := tghelpers.WithHandler(c, "send")
	return h.ctrl.HandleSend(ctx, senderFrom(c), replyNotifier{c: c})
}

// Cancel aborts the dialogue in progress.
func (h *Set) Cancel(c tele.Context) error {
	ctx := tghelpers.WithHandler(c, "cancel")
	return h.ctrl.HandleCancel(ctx, senderFrom(c), replyNotifier{c: c})
}

// Stats reports usage totals. Admin-only.
func (h *Set) Stats(c tele.Context) error {
	ctx := tghelpers.WithHandler(c, "stats")
	users, err := h.users.Count(ctx)
	if err != nil {
		return err
	}
	greetings, err := h.messages.Count(ctx)
	if err != nil {
		return err
	}
	return tghelpers.SendText(c, fmt.Sprintf(
		"👥 Registered users: %d\n🎁 Greetings delivered: %d\n💬 Dialogues in progress: %d",
		users, greetings, h.sessions.Len(),
	))
}

// DisclosureCallback handles the anonymity choice buttons.
func (h *Set) DisclosureCallback(c tele.Context) error {
	ctx := tghelpers.WithHandler(c, "callback.disclosure")
	var anonymous bool
	switch callbacks.CallbackPayload(c) {
	case payloadAnonymous:
		anonymous = true
	case payloadDisclosed:
		anonymous = false
	default:
		return tghelpers.SendText(c, textPickFromOptions)
	}
	return h.ctrl.HandleSelection(ctx, senderFrom(c), anonymous, replyNotifier{c: c})
}

// CancelCallback handles the inline cancel button.
func (h *Set) CancelCallback(c tele.Context) error {
	ctx := tghelpers.WithHandler(c, "callback.cancel")
	return h.ctrl.HandleCancel(ctx, senderFrom(c), replyNotifier{c: c})
}

// UnknownText hints idle users at the send command. Unknown slash commands
// are ignored.
func (h *Set) UnknownText() tele.HandlerFunc {
	return func(c tele.Context) error {
		if strings.HasPrefix(strings.TrimSpace(c.Text()), "/") {
			return nil
		}
		return tghelpers.SendText(c, textHintSend)
	}
}

// UnknownDocument hints that only text greetings are supported.
func (h *Set) UnknownDocument() tele.HandlerFunc {
	return func(c tele.Context) error {
		return tghelpers.SendText(c, textHintSend)
	}
}

// UnknownCallback answers stale or unsupported callback buttons.
func (h *Set) UnknownCallback() tele.HandlerFunc {
	return func(c tele.Context) error {
		return c.Respond(&tele.CallbackResponse{Text: "Unsupported action"})
	}
}

type fsmAdapter struct {
	ctrl *dialog.Controller
}

func (a fsmAdapter) InProgress(userID int64) bool {
	return a.ctrl.InProgress(userID)
}

func (a fsmAdapter) ManagerHandler(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	return a.ctrl.HandleText(ctx, senderFrom(c), c.Text(), replyNotifier{c: c})
}
