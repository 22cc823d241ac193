package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// FromServiceError mengubah error dari service/transaction menjadi response
// JSON konsisten: *fiber.Error apa adanya, selain itu lewat MapDBError.
func FromServiceError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	status, msg := MapDBError(err)
	return JsonError(c, status, msg)
}
