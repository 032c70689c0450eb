package handlers

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"portfolio_app_echo/internal/contact"
	"portfolio_app_echo/internal/metrics"
	"portfolio_app_echo/internal/models"
	"portfolio_app_echo/web/templates/shared"
)

type ContactHandler struct {
	page       *PageHandler
	sender     contact.Sender
	metrics    *metrics.Metrics
	ownerEmail string
	clientSalt string
}

func NewContactHandler(page *PageHandler, sender contact.Sender, m *metrics.Metrics, ownerEmail, clientSalt string) *ContactHandler {
	return &ContactHandler{page: page, sender: sender, metrics: m, ownerEmail: ownerEmail, clientSalt: clientSalt}
}

// Submit handles the contact form. HTMX requests get the form fragment back
// with the toast swapped out of band; plain posts get the whole page.
func (h *ContactHandler) Submit(c echo.Context) error {
	var payload contact.Payload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form submission")
	}

	var toast *contact.Notification
	form := contact.NewForm(h.sender, func(n contact.Notification) { toast = &n })
	form.Fill(payload)

	_, err := form.Submit(h.clientContext(c))
	h.metrics.IncrementContact(submitResult(err))
	if err != nil {
		log.Printf("Contact submission rejected: %v", err)
	}

	state := form.State()
	data := h.page.pageData(models.CategoryAll)
	data.Form = FormView{
		Payload: state.Payload,
		Errors:  state.FieldErrors(),
		Failed:  state.Status == contact.StatusFailed,
	}
	if data.Form.Failed {
		data.Form.ReplyURL = contact.ReplyURL(h.ownerEmail, state.Payload)
	}

	status := submitStatus(err)
	ctx := c.Request().Context()

	if c.Request().Header.Get("HX-Request") != "true" {
		if toast != nil {
			html, err := templ.ToGoHTML(ctx, shared.Toast(toastProps(*toast, false)))
			if err != nil {
				return err
			}
			data.ToastHTML = html
		}
		return c.Render(status, "index.html", data)
	}

	var buf bytes.Buffer
	if err := c.Echo().Renderer.Render(&buf, "contact_form", data, c); err != nil {
		return err
	}
	if toast != nil {
		if err := shared.Toast(toastProps(*toast, true)).Render(ctx, &buf); err != nil {
			return err
		}
	}
	return c.HTMLBlob(status, buf.Bytes())
}

// ContactResponse is the JSON reply of the contact API
type ContactResponse struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Ack     *contact.Ack      `json:"ack,omitempty"`
	Mailto  string            `json:"mailto,omitempty"`
}

// SubmitAPI accepts the contact payload as JSON
func (h *ContactHandler) SubmitAPI(c echo.Context) error {
	var payload contact.Payload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	if err := c.Validate(&payload); err != nil {
		h.metrics.IncrementContact(submitResult(err))
		var verr *contact.ValidationError
		if errors.As(err, &verr) {
			return c.JSON(http.StatusUnprocessableEntity, ContactResponse{Message: contact.UserMessage(err), Fields: verr.Fields})
		}
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	ack, err := h.sender.Send(h.clientContext(c), payload.Normalize())
	h.metrics.IncrementContact(submitResult(err))
	if err != nil {
		log.Printf("Contact API submission failed: %v", err)
		return c.JSON(submitStatus(err), ContactResponse{
			Message: contact.UserMessage(err),
			Mailto:  contact.ReplyURL(h.ownerEmail, payload),
		})
	}

	return c.JSON(http.StatusAccepted, ContactResponse{Message: "Message sent successfully!", Ack: &ack})
}

func (h *ContactHandler) clientContext(c echo.Context) context.Context {
	return contact.WithClient(c.Request().Context(), contact.HashClient(c.RealIP(), h.clientSalt))
}

func toastProps(n contact.Notification, oob bool) shared.ToastProps {
	return shared.ToastProps{Title: n.Title, Description: n.Description, Error: n.Error, OOB: oob}
}

func submitStatus(err error) int {
	var verr *contact.ValidationError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, contact.ErrDuplicate), errors.Is(err, contact.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, contact.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusBadGateway
	}
}

func submitResult(err error) string {
	var verr *contact.ValidationError
	switch {
	case err == nil:
		return "sent"
	case errors.As(err, &verr):
		return "invalid"
	case errors.Is(err, contact.ErrDuplicate):
		return "duplicate"
	case errors.Is(err, contact.ErrRateLimited):
		return "rate_limited"
	default:
		return "failed"
	}
}
