// Package api exposes the ingestion and dashboard endpoints. Handlers
// are thin: all data transformation lives in ingest, schema, and
// dashboard; this layer only moves bytes and maps errors to statuses.
package api

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/insightdelivered/statement-dashboard/internal/dashboard"
	"github.com/insightdelivered/statement-dashboard/internal/ingest"
	"github.com/insightdelivered/statement-dashboard/internal/logger"
	"github.com/insightdelivered/statement-dashboard/internal/schema"
	"github.com/insightdelivered/statement-dashboard/internal/session"
	"github.com/insightdelivered/statement-dashboard/internal/table"
	"github.com/insightdelivered/statement-dashboard/internal/writer"
)

const version = "1.0.0"

// Handler wires the HTTP surface to the core pipeline.
type Handler struct {
	Store    *session.Store
	Synonyms schema.SynonymMap
}

// New returns a handler using the default synonym map.
func New(store *session.Store) *Handler {
	return &Handler{Store: store, Synonyms: schema.Default()}
}

// Register sets up all routes on the app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/api/health", h.Health)
	app.Post("/api/upload", h.Upload)
	app.Get("/api/dashboard", h.Dashboard)
	app.Get("/api/export", h.Export)
}

// Health reports liveness and version.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": version,
	})
}

type uploadResponse struct {
	Success bool     `json:"success"`
	Rows    int      `json:"rows"`
	Columns []string `json:"columns"`
}

// Upload ingests a statement file from the multipart field "statement",
// normalizes it, and stores the canonical table in the caller's session.
func (h *Handler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("statement")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "no statement file uploaded; use form field 'statement'")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("could not open upload: %v", err))
	}
	defer f.Close()

	t, err := ingest.File(fileHeader.Filename, f, h.Synonyms)
	if err != nil {
		var unsupported *ingest.UnsupportedFormatError
		var parseErr *ingest.ParseError
		switch {
		case errors.Is(err, ingest.ErrMissingFile):
			return writeError(c, fiber.StatusBadRequest, err.Error())
		case errors.As(err, &unsupported):
			return writeError(c, fiber.StatusUnsupportedMediaType, err.Error())
		case errors.As(err, &parseErr):
			return writeError(c, fiber.StatusUnprocessableEntity, err.Error())
		default:
			return writeError(c, fiber.StatusInternalServerError, err.Error())
		}
	}

	id := h.sessionID(c)
	h.Store.Save(id, t)

	logger.L.Info("statement ingested",
		"file", fileHeader.Filename,
		"rows", t.Len(),
		"columns", t.Columns(),
	)

	return c.JSON(uploadResponse{
		Success: true,
		Rows:    t.Len(),
		Columns: t.Columns(),
	})
}

type dashboardResponse struct {
	*dashboard.Summary
	Transactions []map[string]any `json:"transactions"`
}

// Dashboard recomputes the aggregate view from the session's table. A
// session with no upload gets the empty-table aggregates, not an error.
func (h *Handler) Dashboard(c *fiber.Ctx) error {
	t := h.sessionTable(c)
	summary := dashboard.Build(t)

	records := t.Records()
	if records == nil {
		records = []map[string]any{}
	}
	return c.JSON(dashboardResponse{
		Summary:      summary,
		Transactions: records,
	})
}

// Export streams the session's canonical table as a CSV download.
func (h *Handler) Export(c *fiber.Ctx) error {
	t := h.sessionTable(c)

	var buf bytes.Buffer
	if err := writer.CSV(&buf, t); err != nil {
		return writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("csv export failed: %v", err))
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="transactions.csv"`)
	return c.Send(buf.Bytes())
}

// sessionID returns the caller's session id, minting one (and setting
// the cookie) on first contact.
func (h *Handler) sessionID(c *fiber.Ctx) string {
	if id := c.Cookies(session.CookieName); id != "" {
		return id
	}
	id := session.NewID()
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    id,
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return id
}

// sessionTable loads the stored table, or an empty canonical table when
// the session has none.
func (h *Handler) sessionTable(c *fiber.Ctx) *table.Table {
	if id := c.Cookies(session.CookieName); id != "" {
		if t, ok := h.Store.Load(id); ok {
			return t
		}
	}
	return table.New()
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   msg,
	})
}
