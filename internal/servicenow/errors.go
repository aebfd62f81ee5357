package servicenow

import (
	"errors"

	"github.com/car1bo/snowattach/internal/apierr"
)

// ErrAttachmentNotFound is returned when an attachment sys_id does not resolve.
var ErrAttachmentNotFound = errors.New("attachment not found")

// wrapAPIError converts transport errors to typed errors.
func wrapAPIError(err error) error {
	return apierr.WrapHTTPError(err)
}
