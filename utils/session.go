package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// SessionStoreKey is the c.Locals key holding the flash session store.
const SessionStoreKey = "session_store"

var ErrSessionStoreMissing = errors.New("session store not initialised")

// SessionStart returns the flash session of the request.
func SessionStart(c *fiber.Ctx) (*session.Session, error) {
	store, ok := c.Locals(SessionStoreKey).(*session.Store)
	if !ok || store == nil {
		return nil, ErrSessionStoreMissing
	}
	return store.Get(c)
}
