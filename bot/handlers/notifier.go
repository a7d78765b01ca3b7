package handlers

import (
	"context"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/greetbot/bot/dialog"
	tghelpers "github.com/m3rciful/greetbot/core/telegram/helpers"
)

// replyNotifier maps dialog prompts onto replies to the update that is being
// processed. Outbound sends go through the shared async dispatcher.
type replyNotifier struct {
	c tele.Context
}

func (n replyNotifier) Notify(_ context.Context, p dialog.Prompt) error {
	text, ok := promptTexts[p]
	if !ok {
		return nil
	}
	if p == dialog.PromptChooseDisclosure {
		return tghelpers.SendText(n.c, text, &tele.SendOptions{ReplyMarkup: disclosureKeyboard()})
	}
	return tghelpers.SendText(n.c, text)
}
