package ports

// ChatMessage is one message of channel history as seen by the host bot.
// Retrieving history is the host's job; this module only reads these values.
type ChatMessage struct {
	ID          string
	AuthorID    string
	AuthorName  string
	Content     string
	Attachments []ChatAttachment
	Stickers    []ChatAttachment
}

// ChatAttachment is a file or sticker attached to a ChatMessage.
type ChatAttachment struct {
	URL         string
	ContentType string // Declared by the platform; empty for stickers
}
