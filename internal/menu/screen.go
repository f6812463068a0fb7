package menu

import "github.com/Yusufakmalov/MY-MEAT/internal/bot/keyboard"

// Delivery tells the transport how a screen reaches the chat.
type Delivery int

const (
	// DeliveryEdit replaces the text and keyboard of the message that carried the pressed button.
	DeliveryEdit Delivery = iota
	// DeliverySend posts a new message.
	DeliverySend
)

func (d Delivery) String() string {
	if d == DeliverySend {
		return "send"
	}
	return "edit"
}

// MediaKind distinguishes photo and video attachments.
type MediaKind int

const (
	MediaPhoto MediaKind = iota
	MediaVideo
)

// Media references a file in media storage.
type Media struct {
	Kind MediaKind
	Path string
}

// Screen is a fully rendered menu state ready for delivery.
type Screen struct {
	Key      Key
	Text     string
	HTML     bool
	Media    *Media
	Rows     [][]keyboard.InlineButton
	Delivery Delivery

	// Fallback is delivered instead when Media cannot be read.
	Fallback *Screen
}

// HasMedia reports whether the screen carries an attachment.
func (s Screen) HasMedia() bool {
	return s.Media != nil && s.Media.Path != ""
}
