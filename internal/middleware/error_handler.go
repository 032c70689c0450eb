package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"portfolio_app_echo/web/templates/shared"
)

// CustomErrorHandler creates a custom error handler for Echo
func CustomErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		c.Logger().Error(err)
		return
	}

	code := http.StatusInternalServerError
	errorTitle := "Internal Server Error"
	errorMessage := ""

	// Check if it's an Echo HTTPError
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code

		// Try to extract message from HTTPError
		if msg, ok := he.Message.(string); ok && msg != "" {
			errorMessage = msg
		}

		// Set title and default message if no custom message provided
		switch code {
		case http.StatusNotFound:
			errorTitle = "Page Not Found"
			if errorMessage == "" {
				errorMessage = "The page you're looking for doesn't exist."
			}
		case http.StatusMethodNotAllowed:
			errorTitle = "Method Not Allowed"
			if errorMessage == "" {
				errorMessage = "This page can't be reached that way."
			}
		case http.StatusBadRequest:
			errorTitle = "Bad Request"
			if errorMessage == "" {
				errorMessage = "The request could not be processed."
			}
		case http.StatusUnprocessableEntity:
			errorTitle = "Invalid Request"
		case http.StatusTooManyRequests:
			errorTitle = "Slow Down"
		default:
			if errorMessage == "" {
				errorMessage = "Something went wrong. Please try again later."
			}
		}
	} else {
		// Non-HTTPError, use default
		errorMessage = "Something went wrong. Please try again later."
	}

	if errorMessage == "" {
		errorMessage = http.StatusText(code)
	}

	// Log the error
	c.Logger().Error(err)

	if c.Request().Method == http.MethodHead {
		c.NoContent(code)
		return
	}

	// API clients get JSON
	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		c.JSON(code, map[string]string{"message": errorMessage})
		return
	}

	// HTMX swaps only the fragment, a whole error page would land in the grid
	if c.Request().Header.Get("HX-Request") == "true" {
		c.String(code, errorMessage)
		return
	}

	props := shared.ErrorPageProps{
		Code:         code,
		ErrorTitle:   errorTitle,
		ErrorMessage: errorMessage,
	}

	var buf bytes.Buffer
	if renderErr := shared.ErrorPage(props).Render(c.Request().Context(), &buf); renderErr != nil {
		// Fallback to plain text if template fails
		c.Logger().Error(fmt.Errorf("failed to render error page: %w", renderErr))
		c.String(code, errorMessage)
		return
	}
	c.HTMLBlob(code, buf.Bytes())
}
