// Package wa builds outbound WhatsApp links. Link construction is a pure
// boundary concern: the service composes message text elsewhere and only
// hands finished strings here.
package wa

import "net/url"

const (
	directBase = "https://wa.me/"
	webSendURL = "https://web.whatsapp.com/send"
)

// Link returns a chat URL carrying the message. With a known phone number
// (digits only, country code included, no +) the link opens the direct
// chat; without one it falls back to the generic web composer.
func Link(phone, message string) string {
	base := webSendURL
	if phone != "" {
		base = directBase + phone
	}

	query := url.Values{}
	query.Set("text", message)

	return base + "?" + query.Encode()
}
