package controllers

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"github.com/reportsink/reportsink/middlewares"
	"github.com/reportsink/reportsink/stores"
	"github.com/reportsink/reportsink/utils"
)

type Auth struct {
	users    stores.UserStore
	sessions *session.Store
}

func NewAuth(users stores.UserStore, sessions *session.Store) *Auth {
	return &Auth{users: users, sessions: sessions}
}

type userLoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Auth) Login(c *fiber.Ctx) error {
	input := &userLoginInput{}
	if err := c.BodyParser(input); err != nil {
		slog.Error(fmt.Sprintf("Error parsing input data: %v", err))

		return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{"error": "The user data is invalid."})
	}

	if !utils.IsValidEmail(input.Email) || len(input.Password) < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{"error": "The user credentials are invalid."})
	}

	user, err := h.users.FindByEmail(c.UserContext(), input.Email)
	if err != nil {
		if !errors.Is(err, stores.ErrNotFound) {
			return renderError(c, err)
		}

		return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{"error": "The user credentials are invalid."})
	}

	if user.Active == nil || !*user.Active || !utils.ComparePasswordHash(input.Password, user.Password) {
		return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{"error": "The user credentials are invalid."})
	}

	sess, err := h.sessions.Get(c)
	if err != nil {
		return renderError(c, err)
	}

	sess.Set(middlewares.SessionUserKey, user.ID.String())

	if err := sess.Save(); err != nil {
		return renderError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(&fiber.Map{
		"user": &fiber.Map{"id": user.ID, "email": user.Email},
	})
}

func (h *Auth) Logout(c *fiber.Ctx) error {
	sess, err := h.sessions.Get(c)
	if err != nil {
		return renderError(c, err)
	}

	if err := sess.Destroy(); err != nil {
		return renderError(c, err)
	}

	return c.Status(fiber.StatusNoContent).JSON(&fiber.Map{})
}

func (h *Auth) Me(c *fiber.Ctx) error {
	id, ok := c.Locals(middlewares.SessionUserKey).(uuid.UUID)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(&fiber.Map{"error": "You must be signed in to access this resource."})
	}

	user, err := h.users.FindByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(&fiber.Map{"error": "You must be signed in to access this resource."})
		}

		return renderError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(&fiber.Map{
		"user": &fiber.Map{"id": user.ID, "email": user.Email},
	})
}
