package contact

import (
	"net/url"
	"strings"
)

// MailtoURL builds a mail-client deep link. Spaces are encoded as %20 since
// mail clients do not decode '+' in mailto headers.
func MailtoURL(address, subject, body string) string {
	var params []string
	if subject != "" {
		params = append(params, "subject="+mailtoEscape(subject))
	}
	if body != "" {
		params = append(params, "body="+mailtoEscape(body))
	}

	link := "mailto:" + address
	if len(params) > 0 {
		link += "?" + strings.Join(params, "&")
	}
	return link
}

func mailtoEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// ReplyURL is the fallback link offered when sending through the form failed
func ReplyURL(ownerAddress string, p Payload) string {
	n := p.Normalize()
	return MailtoURL(ownerAddress, n.Subject, n.Message)
}
