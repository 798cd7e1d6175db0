package controllers

import (
	"github.com/gofiber/fiber/v2"
)

// wantsJSON reports whether the caller asked for a plain JSON body instead
// of a page-description payload. The flag is explicit per request: an Accept
// preference for JSON or the XHR marker header.
func wantsJSON(c *fiber.Ctx) bool {
	if c.Get("X-Requested-With") == "XMLHttpRequest" {
		return true
	}
	return c.Accepts("html", "json") == "json"
}

// renderPage sends the page-description envelope the front-end hydrates into
// a server-rendered view.
func renderPage(c *fiber.Ctx, component string, props fiber.Map) error {
	return c.JSON(fiber.Map{
		"component": component,
		"props":     props,
		"url":       c.OriginalURL(),
	})
}
