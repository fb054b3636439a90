package ui

import "github.com/curaan-web/internal/apperr"

// Theme is the presentation of an error banner
type Theme struct {
	Title   string
	Variant string // CSS modifier, banner--<variant>
}

// ThemeFor picks the banner theme for an error kind. Kinds without a
// dedicated theme, internal_error included, get the generic one.
func ThemeFor(kind apperr.Kind) Theme {
	switch kind {
	case apperr.KindValidation:
		return Theme{Title: "Input Validation Error", Variant: "validation"}
	case apperr.KindService:
		return Theme{Title: "Service Unavailable", Variant: "service"}
	case apperr.KindNotFound:
		return Theme{Title: "Not Found", Variant: "not-found"}
	default:
		return Theme{Title: "Error", Variant: "generic"}
	}
}

// Banner is an error ready for display
type Banner struct {
	Theme
	Message string
}

func newBanner(err *apperr.Error) *Banner {
	if err == nil {
		return nil
	}
	return &Banner{Theme: ThemeFor(err.Kind), Message: err.Message}
}
