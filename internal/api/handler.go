// Package api exposes the importer over HTTP for tooling that submits
// tokenized statement rows and wants transactions back as JSON.
package api

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/liguoqinjim/china-bean-importers/internal/config"
	"github.com/liguoqinjim/china-bean-importers/internal/importer"
	"github.com/liguoqinjim/china-bean-importers/internal/models"
)

const apiVersion = "1.1.0"

// ImportRequest is the JSON body of POST /api/import: the owner
// identity from the statement header plus the tokenized rows.
type ImportRequest struct {
	Kind       string       `json:"kind"`
	Owner      string       `json:"owner"`
	CardNumber string       `json:"cardNumber"`
	Rows       []models.Row `json:"rows"`
}

// ImportResponse is the JSON response from the /api/import endpoint.
type ImportResponse struct {
	Success      bool                 `json:"success"`
	Error        string               `json:"error,omitempty"`
	Kind         string               `json:"kind,omitempty"`
	CardAccount  string               `json:"cardAccount,omitempty"`
	Count        int                  `json:"count"`
	Transactions []models.Transaction `json:"transactions"`
	Warnings     []string             `json:"warnings,omitempty"`
	Version      string               `json:"version,omitempty"`
}

// Server holds the HTTP handlers for the API.
type Server struct {
	cfg *config.Config
	log zerolog.Logger
}

// NewServer builds a Server over an already-loaded configuration.
func NewServer(cfg *config.Config, log zerolog.Logger) *Server {
	return &Server{cfg: cfg, log: log}
}

// App builds the fiber application with all routes registered.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "china-bean-importers",
	})
	app.Get("/api/health", s.handleHealth)
	app.Post("/api/import", s.handleImport)
	return app
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": apiVersion,
	})
}

func (s *Server) handleImport(c *fiber.Ctx) error {
	var req ImportRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("failed to parse request body: %v", err))
	}

	if req.Owner == "" {
		return writeError(c, fiber.StatusBadRequest, "owner is required")
	}
	if req.CardNumber == "" {
		return writeError(c, fiber.StatusBadRequest, "cardNumber is required")
	}
	if len(req.Rows) == 0 {
		return writeError(c, fiber.StatusBadRequest, "rows is empty")
	}

	kind := models.StatementKind(req.Kind)
	if kind == "" {
		kind = models.KindCMBDebit
	}

	imp, err := importer.New(kind, s.cfg, s.log)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}

	st, err := imp.Open(req.Owner, req.CardNumber)
	if err != nil {
		var unknownCard *importer.UnknownCardError
		if errors.As(err, &unknownCard) {
			return writeError(c, fiber.StatusUnprocessableEntity, err.Error())
		}
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}

	txns, warnings, err := st.Convert(req.Rows)
	if err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("conversion failed: %v", err))
	}

	// nil marshals to JSON null, not [].
	if txns == nil {
		txns = []models.Transaction{}
	}

	return c.JSON(ImportResponse{
		Success:      true,
		Kind:         string(kind),
		CardAccount:  st.CardAccount(),
		Count:        len(txns),
		Transactions: txns,
		Warnings:     warnings,
		Version:      apiVersion,
	})
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ImportResponse{
		Success:      false,
		Error:        msg,
		Transactions: []models.Transaction{},
	})
}
