package render

import "github.com/harunnryd/parley/pkg/chat"

// Side is the column a bubble lands on. A viewer's own messages always sit
// on the right, the counterpart's on the left.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Bubble is one per-viewer display record.
type Bubble struct {
	MessageID string
	Text      string
	// Audio is the original clip for the viewer's own spoken messages,
	// the synthesized voice for the counterpart's, nil otherwise.
	Audio     []byte
	TimeLabel string
	Side      Side
	Mine      bool
}

// Project maps the message log to the viewer's display records, in log
// order. Senders review their own words in the pivot language with their
// own recording; receivers get the localized text and the synthesized
// voice. The function is pure: translations and audio were fixed at
// creation time, so no session state is consulted.
func Project(messages []chat.Message, viewer chat.Party) []Bubble {
	bubbles := make([]Bubble, 0, len(messages))
	for _, m := range messages {
		mine := m.Sender == viewer

		text := m.TranslatedText
		if mine {
			text = m.CanonicalText
		}

		var audio []byte
		switch {
		case mine && len(m.OriginalAudio) > 0:
			audio = m.OriginalAudio
		case !mine && len(m.SynthesizedAudio) > 0:
			audio = m.SynthesizedAudio
		}

		side := SideLeft
		if mine {
			side = SideRight
		}

		bubbles = append(bubbles, Bubble{
			MessageID: m.ID,
			Text:      text,
			Audio:     audio,
			TimeLabel: m.CreatedAt.Format("15:04"),
			Side:      side,
			Mine:      mine,
		})
	}
	return bubbles
}
