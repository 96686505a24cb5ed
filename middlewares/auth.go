package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
)

// SessionUserKey is where the signed-in user id lives inside the session.
const SessionUserKey string = "user_id"

// SessionProtected rejects requests without an authenticated session. The
// session store is the only authentication oracle; there are no roles.
func SessionProtected(sessions *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := sessions.Get(c)
		if err != nil {
			return unauthorized(c)
		}

		raw, ok := sess.Get(SessionUserKey).(string)
		if !ok || len(raw) < 1 {
			return unauthorized(c)
		}

		id, err := uuid.Parse(raw)
		if err != nil {
			return unauthorized(c)
		}

		c.Locals(SessionUserKey, id)

		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(&fiber.Map{"error": "You must be signed in to access this resource."})
}

func AuthLimiter() fiber.Handler {
	cfg := limiter.Config{
		Max:        25,
		Expiration: 5 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(&fiber.Map{"error": "Too many requests received within a short amount of time."})
		},
	}

	return limiter.New(cfg)
}
