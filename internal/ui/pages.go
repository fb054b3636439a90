package ui

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/curaan-web/internal/apperr"
	"github.com/curaan-web/internal/composer"
	"github.com/curaan-web/internal/logger"
	"github.com/curaan-web/internal/models"
	"github.com/labstack/echo/v4"
)

const guidancePath = "/guidance"

// PageView is the data passed to every page template
type PageView struct {
	AppTitle       string
	Issue          string
	MaxIssueLength int
	Banner         *Banner
	Result         *models.SearchResult
}

// Pages serves the input page and the results page
type Pages struct {
	searcher       composer.Searcher
	resultCount    int
	appTitle       string
	maxIssueLength int
	logger         *logger.Logger
}

// PagesConfig holds presentation settings for the pages
type PagesConfig struct {
	AppTitle       string
	ResultCount    int
	MaxIssueLength int
}

// NewPages creates the page handlers
func NewPages(searcher composer.Searcher, cfg PagesConfig, log *logger.Logger) *Pages {
	return &Pages{
		searcher:       searcher,
		resultCount:    cfg.ResultCount,
		appTitle:       cfg.AppTitle,
		maxIssueLength: cfg.MaxIssueLength,
		logger:         log,
	}
}

// Index handles GET / - the empty input page
func (p *Pages) Index(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", p.view())
}

// Submit handles POST / - blank input re-renders the form without a search
func (p *Pages) Submit(c echo.Context) error {
	issue := strings.TrimSpace(c.FormValue("issue"))
	if issue == "" {
		return c.Render(http.StatusOK, "index.html", p.view())
	}
	return c.Redirect(http.StatusSeeOther, guidancePath+"?q="+url.QueryEscape(issue))
}

// Guidance handles GET /guidance?q= - runs one search and renders the verses
func (p *Pages) Guidance(c echo.Context) error {
	ctx := c.Request().Context()

	session := composer.New(p.searcher, composer.WithResultCount(p.resultCount))
	err := session.Submit(ctx, c.QueryParam("q"))
	switch {
	case errors.Is(err, composer.ErrEmptyIssue):
		return c.Redirect(http.StatusSeeOther, "/")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		p.logger.Debug("client went away before guidance was ready", slog.String("error", err.Error()))
		return nil
	}

	snap := session.Snapshot()
	view := p.view()
	view.Issue = snap.Issue
	view.Result = snap.Result

	status := http.StatusOK
	if snap.Err != nil {
		view.Banner = newBanner(snap.Err)
		status = snap.Err.HTTPStatus()
	}
	return c.Render(status, "results.html", view)
}

// RenderError renders an error page for browser routes
func (p *Pages) RenderError(c echo.Context, err *apperr.Error) error {
	view := p.view()
	view.Banner = newBanner(err)
	return c.Render(err.HTTPStatus(), "error.html", view)
}

// RegisterRoutes registers page and static asset routes
func (p *Pages) RegisterRoutes(e *echo.Echo) {
	e.StaticFS("/static", echo.MustSubFS(staticFiles, "static"))
	e.GET("/", p.Index)
	e.POST("/", p.Submit)
	e.GET(guidancePath, p.Guidance)
}

func (p *Pages) view() PageView {
	return PageView{
		AppTitle:       p.appTitle,
		MaxIssueLength: p.maxIssueLength,
	}
}
