package utils

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/AlexMorea/rentaroom/models"
)

const (
	ContactMethodPhone    = "phone"
	ContactMethodWhatsApp = "whatsapp"
	ContactMethodEmail    = "email"
)

var (
	nonDigitPattern    = regexp.MustCompile(`\D`)
	whitespacePattern  = regexp.MustCompile(`\s`)
	ContactMethods     = []string{ContactMethodPhone, ContactMethodWhatsApp, ContactMethodEmail}
)

// StripToDigits removes every non-digit character from a phone number.
func StripToDigits(phoneNumber string) string {
	return nonDigitPattern.ReplaceAllString(phoneNumber, "")
}

// TelLink builds a telephone-scheme URI from the room's phone number,
// verbatim except for whitespace. Returns "" when no number is set.
func TelLink(phoneNumber string) string {
	number := whitespacePattern.ReplaceAllString(phoneNumber, "")
	if number == "" {
		return ""
	}
	return "tel:" + number
}

// WhatsAppLink builds a wa.me deep link. The WhatsApp number is preferred,
// falling back to the plain phone number; either way only digits survive.
// Returns "" when neither yields any digits.
func WhatsAppLink(whatsAppNumber, phoneNumber string) string {
	number := whatsAppNumber
	if number == "" {
		number = phoneNumber
	}
	digits := StripToDigits(number)
	if digits == "" {
		return ""
	}
	return "https://wa.me/" + digits
}

// MailtoLink builds a mailto URI with an URL-encoded subject and a fixed
// enquiry body naming the room. The room's contact email is preferred,
// falling back to the owner's account email. Returns "" when both are empty.
func MailtoLink(contactEmail, ownerEmail, appName, title, location string) string {
	address := contactEmail
	if address == "" {
		address = ownerEmail
	}
	if address == "" {
		return ""
	}

	subject := fmt.Sprintf("%s enquiry: %s", appName, title)
	body := fmt.Sprintf("Hi, I am enquiring about your listing %q in %s. Is the room still available?", title, location)

	return "mailto:" + address + "?subject=" + encodeMailtoComponent(subject) + "&body=" + encodeMailtoComponent(body)
}

// encodeMailtoComponent percent-encodes for mailto query components; mail
// clients expect %20 rather than '+' for spaces.
func encodeMailtoComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// BuildContactLink resolves the redirect target for a contact dispatch.
// Returns "" when the room lacks the info the method needs, which the caller
// treats as a soft-fail back to the room page.
func BuildContactLink(room *models.Room, ownerEmail, method, appName string) string {
	switch method {
	case ContactMethodPhone:
		return TelLink(room.ContactPhone)
	case ContactMethodWhatsApp:
		return WhatsAppLink(room.ContactWhatsApp, room.ContactPhone)
	case ContactMethodEmail:
		return MailtoLink(room.ContactEmail, ownerEmail, appName, room.Title, room.Location)
	}
	return ""
}
