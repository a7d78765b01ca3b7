package dialog

import (
	"strings"
	"testing"
)

func TestComposeGreetingDisclosedPrefersHandle(t *testing.T) {
	sender := Sender{ID: 1, Handle: "alice", DisplayName: "Alice Smith"}
	got := ComposeGreeting("hello", false, sender)

	if !strings.Contains(got, "hello") {
		t.Fatalf("body missing: %q", got)
	}
	if !strings.Contains(got, "@alice") {
		t.Fatalf("footer must carry the handle: %q", got)
	}
	if strings.Contains(got, "Alice Smith") {
		t.Fatalf("display name must not be used when the handle is set: %q", got)
	}
}

func TestComposeGreetingDisclosedFallsBackToName(t *testing.T) {
	sender := Sender{ID: 1, DisplayName: "Alice Smith"}
	got := ComposeGreeting("hello", false, sender)

	if !strings.Contains(got, "Alice Smith") {
		t.Fatalf("footer must carry the display name: %q", got)
	}
}

func TestComposeGreetingAnonymous(t *testing.T) {
	sender := Sender{ID: 1, Handle: "alice", DisplayName: "Alice Smith"}
	got := ComposeGreeting("hello", true, sender)

	if strings.Contains(got, "alice") || strings.Contains(got, "Alice") {
		t.Fatalf("anonymous greeting leaks sender: %q", got)
	}
	if !strings.Contains(got, "sender hidden") {
		t.Fatalf("anonymous footer missing: %q", got)
	}
}

func TestComposeGreetingEscapesMarkdown(t *testing.T) {
	sender := Sender{ID: 1, Handle: "alice"}
	got := ComposeGreeting("stay *strong* _friend_", true, sender)

	if !strings.Contains(got, `\*strong\*`) || !strings.Contains(got, `\_friend\_`) {
		t.Fatalf("markdown specials must be escaped: %q", got)
	}
}
