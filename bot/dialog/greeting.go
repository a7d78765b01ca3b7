package dialog

import (
	"fmt"

	"github.com/m3rciful/greetbot/core/telegram/format"
)

const (
	greetingHeaderAnonymous = "🎁 You've received an anonymous greeting:"
	greetingHeader          = "🎁 You've received a greeting:"
	greetingFooterAnonymous = "— sender hidden"
)

// ComposeGreeting renders the text the recipient will see. User-provided
// content is escaped for Markdown so the delivery never fails on formatting.
// When the sender is disclosed the footer carries their @handle if present,
// otherwise their display name.
func ComposeGreeting(text string, anonymous bool, sender Sender) string {
	body, err := format.EscapeMarkdown(text, format.MarkdownV1)
	if err != nil {
		body = text
	}

	if anonymous {
		return fmt.Sprintf("%s\n\n%s\n\n%s", greetingHeaderAnonymous, body, greetingFooterAnonymous)
	}

	name := sender.DisplayName
	if sender.Handle != "" {
		name = "@" + sender.Handle
	}
	if escaped, err := format.EscapeMarkdown(name, format.MarkdownV1); err == nil {
		name = escaped
	}
	return fmt.Sprintf("%s\n\n%s\n\n— from %s", greetingHeader, body, name)
}
