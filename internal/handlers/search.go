package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/curaan-web/internal/apperr"
	"github.com/curaan-web/internal/models"
	"github.com/curaan-web/internal/services"
	"github.com/labstack/echo/v4"
)

const msgInternal = "Internal server error"

// SearchHandler handles the therapy search relay endpoint
type SearchHandler struct {
	therapySearch *services.TherapySearchService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(therapySearch *services.TherapySearchService) *SearchHandler {
	return &SearchHandler{
		therapySearch: therapySearch,
	}
}

// TherapySearch handles POST /therapy-search - relays the concern to the search backend
func (h *SearchHandler) TherapySearch(c echo.Context) error {
	ctx := c.Request().Context()

	var in models.TherapySearchInput
	if err := bindInput(c, &in); err != nil {
		return err
	}

	req, err := h.therapySearch.Normalize(in)
	if err != nil {
		return err
	}

	reply, err := h.therapySearch.Forward(ctx, req)
	if err != nil {
		return err
	}

	return c.Blob(reply.Status, echo.MIMEApplicationJSON, reply.Body)
}

// bindInput decodes the request body. A body that cannot be read as JSON is
// an internal_error; only an oversized body keeps its own status.
func bindInput(c echo.Context, in *models.TherapySearchInput) error {
	if c.Request().ContentLength == 0 {
		return apperr.Wrap(apperr.KindInternal, msgInternal, io.EOF)
	}

	err := c.Bind(in)
	if err == nil {
		return nil
	}
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code == http.StatusRequestEntityTooLarge {
		return he
	}
	return apperr.Wrap(apperr.KindInternal, msgInternal, err)
}

// RegisterRoutes registers search routes
func (h *SearchHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/therapy-search", h.TherapySearch)
}
