package domain

import (
	"fmt"
	"net/url"
	"regexp"
)

var nonDigitRe = regexp.MustCompile(`[^\d]`)

// WhatsAppMessage builds the predefined inquiry message for a model.
func WhatsAppMessage(nombre, marca string) string {
	return fmt.Sprintf("Hola! Me interesa la moto %s %s. ¿Podrían darme más información?", marca, nombre)
}

// WhatsAppLink builds the wa.me contact link for a model. Any non-digit
// characters in the configured number are stripped.
func WhatsAppLink(whatsappNumber, nombre, marca string) string {
	number := nonDigitRe.ReplaceAllString(whatsappNumber, "")
	message := url.QueryEscape(WhatsAppMessage(nombre, marca))
	return fmt.Sprintf("https://wa.me/%s?text=%s", number, message)
}
