// Package flashmessages keeps one-shot messages and form data across a
// redirect.
package flashmessages

import (
	"encoding/json"

	"undangan.link/utils"

	"github.com/gofiber/fiber/v2"
)

const (
	FlashSuccessKey  = "flash_success"
	FlashErrorKey    = "flash_error"
	flashFormDataKey = "flash_form_data"
)

// FlashMessages holds the messages read for the current request.
type FlashMessages struct {
	Success string
	Error   string
}

// SetFlashMessage stores message under key until the next read.
func SetFlashMessage(c *fiber.Ctx, key, message string) error {
	sess, err := utils.SessionStart(c)
	if err != nil {
		return err
	}
	sess.Set(key, message)
	return sess.Save()
}

// GetFlashMessages reads and clears the pending messages.
func GetFlashMessages(c *fiber.Ctx) (FlashMessages, error) {
	var fm FlashMessages
	sess, err := utils.SessionStart(c)
	if err != nil {
		return fm, err
	}
	if v, ok := sess.Get(FlashSuccessKey).(string); ok {
		fm.Success = v
	}
	if v, ok := sess.Get(FlashErrorKey).(string); ok {
		fm.Error = v
	}
	if fm.Success == "" && fm.Error == "" {
		return fm, nil
	}
	sess.Delete(FlashSuccessKey)
	sess.Delete(FlashErrorKey)
	return fm, sess.Save()
}

// SetFlashFormData keeps submitted values so a failed form can be refilled.
func SetFlashFormData(c *fiber.Ctx, data interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	sess, err := utils.SessionStart(c)
	if err != nil {
		return err
	}
	sess.Set(flashFormDataKey, string(raw))
	return sess.Save()
}

// GetFlashFormData reads and clears the kept form values.
func GetFlashFormData(c *fiber.Ctx) map[string]interface{} {
	sess, err := utils.SessionStart(c)
	if err != nil {
		return nil
	}
	raw, ok := sess.Get(flashFormDataKey).(string)
	if !ok || raw == "" {
		return nil
	}
	sess.Delete(flashFormDataKey)
	_ = sess.Save()

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil
	}
	return data
}
