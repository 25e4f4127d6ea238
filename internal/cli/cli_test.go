package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quizapp_backend/internal/util"
)

func TestTokenCommandPrintsVerifiableToken(t *testing.T) {
	dir := t.TempDir()
	body := "database:\n  driver: memory\njwt:\n  secret: cli-test-secret\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"token", "--config", dir, "--user", "u-42"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	claims, err := util.ParseJWT(strings.TrimSpace(out.String()), "cli-test-secret")
	if err != nil {
		t.Fatalf("parse printed token: %v", err)
	}
	if claims.UserID != "u-42" {
		t.Fatalf("expected user u-42, got %s", claims.UserID)
	}
}

func TestTokenCommandRequiresUser(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"token", "--config", t.TempDir()})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error without --user")
	}
}

func TestMigrateRejectsMemoryDriver(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("database:\n  driver: memory\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := runMigrations(dir); err == nil {
		t.Fatalf("expected migrate to refuse the memory driver")
	}
}
