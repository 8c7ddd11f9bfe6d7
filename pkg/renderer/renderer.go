// Package renderer renders views with the values every layout expects.
package renderer

import (
	"net/http"

	"undangan.link/pkg/flashmessages"

	"github.com/gofiber/fiber/v2"
)

const (
	FlashSuccessKeyView = "Success"
	FlashErrorKeyView   = "Error"
)

// LocalsViewKeys are copied from c.Locals into every view when not set.
var LocalsViewKeys = []string{"Session", "UserName", "IsAdmin", "CsrfToken"}

// Render renders view inside layout. An empty layout renders the view alone.
func Render(c *fiber.Ctx, view, layout string, data fiber.Map, statusCode ...int) error {
	if data == nil {
		data = fiber.Map{}
	}
	for _, key := range LocalsViewKeys {
		if _, exists := data[key]; !exists {
			if v := c.Locals(key); v != nil {
				data[key] = v
			}
		}
	}
	if _, exists := data["CurrentPath"]; !exists {
		data["CurrentPath"] = c.Path()
	}

	status := http.StatusOK
	if len(statusCode) > 0 {
		status = statusCode[0]
	}
	c.Status(status)
	if layout == "" {
		return c.Render(view, data)
	}
	return c.Render(view, data, layout)
}

// SetFlashMessages copies read flash messages into data.
func SetFlashMessages(data fiber.Map, flash flashmessages.FlashMessages) {
	if flash.Success != "" {
		data[FlashSuccessKeyView] = flash.Success
	}
	if flash.Error != "" {
		data[FlashErrorKeyView] = flash.Error
	}
}
