package handlers

import "github.com/gofiber/fiber/v2"

// PagesHandler serves the CRM page shells. The real UI is rendered
// client-side; these routes exist so the page guard has something to
// protect and redirect to.
type PagesHandler struct{}

// NewPagesHandler constructs handler.
func NewPagesHandler() *PagesHandler {
	return &PagesHandler{}
}

// Login serves GET /leads/login, the only page under /leads reachable
// without a valid session cookie.
func (h *PagesHandler) Login(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(`<!DOCTYPE html>
<html>
<head><title>Brandoverts CRM - Login</title></head>
<body><div id="app" data-page="login"></div></body>
</html>`)
}

// Dashboard serves every other page under /leads once the guard has let
// the request through.
func (h *PagesHandler) Dashboard(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(`<!DOCTYPE html>
<html>
<head><title>Brandoverts CRM</title></head>
<body><div id="app" data-page="dashboard"></div></body>
</html>`)
}
