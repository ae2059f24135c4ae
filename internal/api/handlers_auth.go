package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/hazelbrook/doseline/internal/models"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	var payload registerRequest
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "invalid request body")
	}

	user, err := handler.authService.Register(payload.Name, payload.Email, payload.Password)
	if err != nil {
		return handler.serviceError(c, err)
	}

	if err := handler.setAuthCookie(c, &user, false); err != nil {
		return handler.serviceError(c, err)
	}
	token, err := handler.buildToken(&user, defaultAuthTokenTTL)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":  userView(user),
		"token": token,
	})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	var payload loginRequest
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "invalid request body")
	}

	user, err := handler.authService.Authenticate(payload.Email, payload.Password)
	if err != nil {
		return handler.serviceError(c, err)
	}

	if err := handler.setAuthCookie(c, &user, payload.RememberMe); err != nil {
		return handler.serviceError(c, err)
	}
	tokenTTL := defaultAuthTokenTTL
	if payload.RememberMe {
		tokenTTL = rememberAuthTokenTTL
	}
	token, err := handler.buildToken(&user, tokenTTL)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"user":  userView(user),
		"token": token,
	})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"status": "logged out"})
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}
	return c.JSON(fiber.Map{"user": userView(*user)})
}

func userView(user models.User) fiber.Map {
	return fiber.Map{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	}
}
