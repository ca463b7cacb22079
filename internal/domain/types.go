package domain

type ConversationID string
type UserID string

type LanguageCode string

const (
	LangEnglish LanguageCode = "en"
	LangHindi   LanguageCode = "hi"
)

// CategoryMarkerPrefix tags the synthetic first turn of a conversation that
// was started from a quick-pick topic instead of free text. Turns whose
// question carries it are hidden from the transcript.
const CategoryMarkerPrefix = "Started conversation in category:"

// ImageQuestionPlaceholder stands in for the question text when a turn
// carries only an attachment.
const ImageQuestionPlaceholder = "Analyze crop image"
