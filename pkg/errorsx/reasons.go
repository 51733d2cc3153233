package errorsx

// ReasonCode is a short machine-readable error reason.
type ReasonCode string

const (
	ReasonUnknown ReasonCode = "unknown"

	ReasonTranscribe      ReasonCode = "transcribe"
	ReasonBadAudio        ReasonCode = "bad_audio"
	ReasonEmptyTranscript ReasonCode = "empty_transcript"

	ReasonTranslate  ReasonCode = "translate"
	ReasonSynthesize ReasonCode = "synthesize"

	ReasonUnknownLanguage  ReasonCode = "unknown_language"
	ReasonUnsupportedAudio ReasonCode = "unsupported_audio"
	ReasonClipTooShort     ReasonCode = "clip_too_short"
)
