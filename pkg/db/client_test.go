package db

import (
	"context"
	"io"
	"testing"

	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/config"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestNewRequiresDSN(t *testing.T) {
	if _, err := New(context.Background(), config.DBConfig{}, testLogger()); err == nil {
		t.Fatal("expected an error for a missing DSN")
	}
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	cfg := config.DBConfig{DSN: "x", Driver: "oracle"}
	if _, err := New(context.Background(), cfg, testLogger()); err == nil {
		t.Fatal("expected an error for an unsupported driver")
	}
}

func TestNewSQLiteDriver(t *testing.T) {
	cfg := config.DBConfig{DSN: "file:dbclient?mode=memory&cache=shared", Driver: "sqlite"}
	client, err := New(context.Background(), cfg, testLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer client.Close()

	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}
