package chat

import (
	"fmt"
	"strings"
	"time"
)

// Party identifies one of the two chat participants.
type Party string

const (
	PartyA Party = "a"
	PartyB Party = "b"
)

// Other returns the opposite participant. With exactly two parties the
// receiver of every message is the sender's counterpart.
func (p Party) Other() Party {
	if p == PartyA {
		return PartyB
	}
	return PartyA
}

func (p Party) String() string { return string(p) }

// Valid reports whether p is one of the two known parties.
func (p Party) Valid() bool {
	return p == PartyA || p == PartyB
}

// ParseParty resolves a wire identifier ("a" or "b") to a Party.
func ParseParty(s string) (Party, error) {
	switch Party(strings.ToLower(strings.TrimSpace(s))) {
	case PartyA:
		return PartyA, nil
	case PartyB:
		return PartyB, nil
	}
	return "", fmt.Errorf("unknown party: %q", s)
}

// ReceiverResolver maps a sender to the receiving party. The default is
// Party.Other; the pipeline takes it as a function so routing for more than
// two parties would not require a core rewrite.
type ReceiverResolver func(sender Party) Party

// Message is one chat utterance. Messages are immutable once stored:
// translated text and synthesized audio are fixed at creation time using the
// language pair active at that moment, and later language changes never
// re-translate history.
type Message struct {
	ID     string
	Sender Party

	// CanonicalText is the content in the pivot language, the single
	// source of truth for the message.
	CanonicalText string

	// TranslatedText is CanonicalText in the receiver's language at
	// creation time.
	TranslatedText string

	// OriginalAudio is the captured clip, present only when the message
	// originated as speech.
	OriginalAudio []byte

	// SynthesizedAudio is TranslatedText spoken in the receiver's
	// language. Set only when OriginalAudio is present and synthesis
	// succeeded; text messages never carry synthesized audio.
	SynthesizedAudio []byte

	CreatedAt time.Time
}

// Spoken reports whether the message originated as speech.
func (m Message) Spoken() bool {
	return len(m.OriginalAudio) > 0
}
