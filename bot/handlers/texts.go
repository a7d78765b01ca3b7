package handlers

import (
	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/greetbot/bot/dialog"
	"github.com/m3rciful/greetbot/core/telegram/keyboard"
)

const (
	textWelcome     = "👋 Hi!\n\nTo send a greeting — use /send"
	textWelcomeBack = "👋 Welcome back!\n\nTo send a greeting — use /send"

	textAskRecipient     = "Enter the recipient's @username 👇"
	textBadHandle        = "❌ The username must start with @"
	textNotFound         = "❌ User not found.\nThey need to press /start in this bot first."
	textSelfRecipient    = "❌ You cannot send a greeting to yourself"
	textChooseDisclosure = "Choose how to sign your greeting:"
	textPickFromOptions  = "Pick one of the options below ⬇️"
	textAskText          = "✍️ Write the greeting text"
	textEmptyText        = "❌ The greeting cannot be empty"

	textDelivered      = "✅ Greeting delivered 🎉\n\n👉 To send another one — use /send again"
	textDeliveryFailed = "❌ The greeting could not be delivered.\nThe recipient may not have started the bot or may have blocked it.\n\n👉 To greet someone else — use /send"
	textAlreadySent    = "ℹ️ You've already sent your greeting.\n👉 To send another one — use /send"

	textCancelled       = "🚫 Dialogue cancelled.\n👉 Start again anytime with /send"
	textNothingToCancel = "ℹ️ Nothing to cancel — no dialogue in progress"
	textHintSend        = "ℹ️ To send a greeting — use /send"
	textInternalError   = "😿 Something went wrong. Please try again later."
)

const (
	labelAnonymous = "🔒 Anonymously"
	labelDisclose  = "👀 Show my name"
	labelCancel    = "❌ Cancel"

	cbDisclosure = "dlg_disclosure"
	cbCancel     = "dlg_cancel"

	payloadAnonymous = "anon"
	payloadDisclosed = "named"
)

var promptTexts = map[dialog.Prompt]string{
	dialog.PromptWelcome:           textWelcome,
	dialog.PromptWelcomeBack:       textWelcomeBack,
	dialog.PromptAskRecipient:      textAskRecipient,
	dialog.PromptBadHandle:         textBadHandle,
	dialog.PromptRecipientNotFound: textNotFound,
	dialog.PromptSelfRecipient:     textSelfRecipient,
	dialog.PromptChooseDisclosure:  textChooseDisclosure,
	dialog.PromptPickFromOptions:   textPickFromOptions,
	dialog.PromptAskText:           textAskText,
	dialog.PromptEmptyText:         textEmptyText,
	dialog.PromptDelivered:         textDelivered,
	dialog.PromptDeliveryFailed:    textDeliveryFailed,
	dialog.PromptAlreadySent:       textAlreadySent,
	dialog.PromptCancelled:         textCancelled,
	dialog.PromptNothingToCancel:   textNothingToCancel,
	dialog.PromptHintSend:          textHintSend,
	dialog.PromptInternalError:     textInternalError,
}

func disclosureKeyboard() *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{{Text: labelAnonymous, Unique: cbDisclosure, Data: payloadAnonymous}},
		[]keyboard.InlineBtn{{Text: labelDisclose, Unique: cbDisclosure, Data: payloadDisclosed}},
		[]keyboard.InlineBtn{{Text: labelCancel, Unique: cbCancel, Data: "cancel"}},
	)
}
