package handlers

import (
	"testing"

	"github.com/m3rciful/greetbot/bot/dialog"
)

func TestEveryPromptHasText(t *testing.T) {
	prompts := []dialog.Prompt{
		dialog.PromptWelcome,
		dialog.PromptWelcomeBack,
		dialog.PromptAskRecipient,
		dialog.PromptBadHandle,
		dialog.PromptRecipientNotFound,
		dialog.PromptSelfRecipient,
		dialog.PromptChooseDisclosure,
		dialog.PromptPickFromOptions,
		dialog.PromptAskText,
		dialog.PromptEmptyText,
		dialog.PromptDelivered,
		dialog.PromptDeliveryFailed,
		dialog.PromptAlreadySent,
		dialog.PromptCancelled,
		dialog.PromptNothingToCancel,
		dialog.PromptHintSend,
		dialog.PromptInternalError,
	}

	for _, p := range prompts {
		if text, ok := promptTexts[p]; !ok || text == "" {
			t.Errorf("prompt %d has no text", p)
		}
	}
}

func TestDisclosureKeyboardLayout(t *testing.T) {
	markup := disclosureKeyboard()

	if len(markup.InlineKeyboard) != 3 {
		t.Fatalf("rows = %d, want 3", len(markup.InlineKeyboard))
	}
	for i, row := range markup.InlineKeyboard {
		if len(row) != 1 {
			t.Fatalf("row %d has %d buttons, want 1", i, len(row))
		}
	}
}
