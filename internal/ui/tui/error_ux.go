package tui

import (
	"errors"

	"github.com/allenai/mathfish/internal/domain"
)

func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var oe *domain.OpError
	if !errors.As(err, &oe) {
		return "Unexpected error (see logs)"
	}

	switch oe.Kind {
	case domain.KindNotFound:
		if oe.Err != nil {
			return "Not found: " + clampString(oe.Err.Error(), 60)
		}
		return "Not found"
	case domain.KindIntegrity:
		return "Taxonomy integrity error (run mathfish validate)"
	case domain.KindInvalidArgument:
		return "Invalid selection"
	default:
		return "Unexpected error (see logs)"
	}
}
