// Package shared holds the templ components rendered outside the page
// templates: toasts and error pages.
package shared

// ToastProps is one notification
type ToastProps struct {
	Title       string
	Description string
	Error       bool
	// OOB swaps the toast into #toasts from an HTMX response
	OOB bool
}

type ErrorPageProps struct {
	Code         int
	ErrorTitle   string
	ErrorMessage string
	BackLink     string
	BackText     string
}

func (p ErrorPageProps) backLink() string {
	if p.BackLink == "" {
		return "/"
	}
	return p.BackLink
}

func (p ErrorPageProps) backText() string {
	if p.BackText == "" {
		return "Back to home"
	}
	return p.BackText
}
