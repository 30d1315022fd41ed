package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/xiaot623/gogo/venueboard/internal/domain"
	"github.com/xiaot623/gogo/venueboard/internal/normalize"
	"github.com/xiaot623/gogo/venueboard/internal/service"
	"github.com/xiaot623/gogo/venueboard/internal/temporal"
)

const rowHeight = 28

// Bar is one rendered timeline row.
type Bar struct {
	Index    int
	ID       string
	Label    string
	Kind     string
	Halls    []string
	Left     float64
	Width    float64
	Progress float64
	Done     float64
	Finished bool
	Plan     domain.GradientSpec
	Fill     domain.GradientSpec
}

// TimelinePage is the data of the timeline template.
type TimelinePage struct {
	Source    string
	DatasetID string
	From      time.Time
	To        time.Time
	Now       time.Time
	Palette   domain.Palette
	Bars      []Bar
	Height    int
	Excluded  int
	Skipped   int
}

// EventPage is the data of the detail panel template.
type EventPage struct {
	Label    string
	Record   domain.EventRecord
	Finished bool
	Palette  domain.Palette
	Todos    []domain.Todo
}

// Handler serves the HTML pages.
type Handler struct {
	service *service.Service
	now     func() time.Time
}

// NewHandler creates a new page handler.
func NewHandler(service *service.Service) *Handler {
	return &Handler{
		service: service,
		now:     time.Now,
	}
}

// RegisterRoutes registers the page routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Timeline)
	e.GET("/events/:event_id", h.Event)
}

// Timeline renders the timeline of the current dataset.
// GET /
func (h *Handler) Timeline(c echo.Context) error {
	ctx := c.Request().Context()

	page := TimelinePage{Now: h.now(), Palette: h.service.Palette()}
	summary, err := h.service.Current(ctx)
	if errors.Is(err, domain.ErrNoDataset) {
		return c.Render(http.StatusOK, "timeline", page)
	}
	if err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}
	records, err := h.service.Records(ctx)
	if err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}

	page.Source = summary.Source
	page.DatasetID = summary.DatasetID
	page.Excluded = len(summary.Excluded)
	page.Skipped = len(summary.Skipped)
	page.From, page.To = span(records)
	page.Bars = layout(records, page.From, page.To, page.Now, page.Palette, h.service.Token())
	page.Height = len(page.Bars)*rowHeight + rowHeight
	return c.Render(http.StatusOK, "timeline", page)
}

// Event renders the detail panel of one record.
// GET /events/:event_id
func (h *Handler) Event(c echo.Context) error {
	ctx := c.Request().Context()

	rec, err := h.service.Record(ctx, c.Param("event_id"))
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrNoDataset) {
		return c.String(http.StatusNotFound, "event not found")
	}
	if err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}
	todos, err := h.service.ListTodos(ctx, rec.ID)
	if err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}

	return c.Render(http.StatusOK, "event", EventPage{
		Label:    normalize.DisplayID(rec.ID, h.service.Token()),
		Record:   *rec,
		Finished: rec.Finished(h.now()),
		Palette:  h.service.Palette(),
		Todos:    todos,
	})
}

// span returns the earliest start and the latest end of records.
func span(records []domain.EventRecord) (time.Time, time.Time) {
	var from, to time.Time
	for i, r := range records {
		if i == 0 || r.Start.Before(from) {
			from = r.Start
		}
		if i == 0 || r.End.After(to) {
			to = r.End
		}
	}
	return from, to
}

// layout positions each record as a percentage of the [from, to] window.
func layout(records []domain.EventRecord, from, to, now time.Time, p domain.Palette, token string) []Bar {
	total := float64(to.Sub(from))
	if total <= 0 {
		total = 1
	}
	bars := make([]Bar, len(records))
	for i, r := range records {
		start, end := r.Start, r.End
		if end.Before(start) {
			start, end = end, start
		}
		g := temporal.RecordGradients(r, p)
		bars[i] = Bar{
			Index:    i,
			ID:       r.ID,
			Label:    normalize.DisplayID(r.ID, token),
			Kind:     r.Kind,
			Halls:    r.Halls,
			Left:     100 * float64(start.Sub(from)) / total,
			Width:    100 * float64(end.Sub(start)) / total,
			Progress: r.Progress,
			Done:     100 * float64(end.Sub(start)) / total * r.Progress / 100,
			Finished: r.Finished(now),
			Plan:     g.Plan,
			Fill:     g.Progress,
		}
	}
	return bars
}
