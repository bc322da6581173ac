package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/casedesk/internal/common"
)

// describe turns a service error into a message for the terminal.
func describe(err error) string {
	var (
		ve *common.ValidationError
		se *common.StatusError
	)
	switch {
	case errors.As(err, &ve):
		return ve.Message
	case errors.Is(err, common.ErrTimeout):
		return "the server did not answer in time, try again"
	case errors.Is(err, common.ErrNoBackend):
		return "no server is configured"
	case errors.As(err, &se) && se.Status == 0:
		return "could not reach the server"
	case errors.As(err, &se):
		return fmt.Sprintf("%s (status %d)", se.Message, se.Status)
	case errors.Is(err, common.ErrAuth):
		return "the server sent an unusable sign-in response"
	case errors.Is(err, common.ErrStorage):
		return "local storage failed: " + err.Error()
	case errors.Is(err, context.Canceled):
		return "cancelled"
	default:
		return err.Error()
	}
}
