package http

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/bahafit/bahafit/internal/observability"
	apperrors "github.com/bahafit/bahafit/pkg/util"
)

func TestRequestLogRecordsTranslatedStatus(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	app := fiber.New()
	RegisterMiddlewares(app, zap.New(core), observability.NewMetrics(), 0)
	app.Get("/missing", func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("resource")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Fatalf("expected 404 response, got %d", resp.StatusCode)
	}

	var entries []observer.LoggedEntry
	for _, entry := range logs.All() {
		if entry.Message == "request" {
			entries = append(entries, entry)
		}
	}
	if len(entries) != 1 {
		t.Fatalf("expected one request log entry, got %d", len(entries))
	}
	status, ok := entries[0].ContextMap()["status"]
	if !ok {
		t.Fatal("request log entry has no status field")
	}
	if status != int64(404) {
		t.Fatalf("request log must carry the translated status, got %v", status)
	}
}
