package parley

import "errors"

var (
	// ErrUnknownLanguage rejects language codes outside the registry.
	ErrUnknownLanguage = errors.New("unknown language code")
	// ErrUnsupportedAudio rejects uploads that are not wav, mp3 or m4a.
	ErrUnsupportedAudio = errors.New("unsupported audio format")
	// ErrClipTooShort rejects recorded clips under the minimum size,
	// which filters out empty taps on the record button.
	ErrClipTooShort = errors.New("recorded clip too short")
	// ErrUnknownParty rejects identifiers other than the two parties.
	ErrUnknownParty = errors.New("unknown party")
)
