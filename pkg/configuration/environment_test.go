package configuration

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEnv_LoadsExistingFiles(t *testing.T) {
	tmp := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmp, ".env.local"), []byte("FIELDTRAK_TEST_ENV_LOAD=ok\n"), 0o644); err != nil {
		t.Fatalf("write .env.local: %v", err)
	}

	origWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("chdir: %v", err)
	}

	_ = os.Unsetenv("FIELDTRAK_TEST_ENV_LOAD")

	n, err := LoadEnv([]string{".env", ".env.local"})
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 env file loaded, got %d", n)
	}
	if got := os.Getenv("FIELDTRAK_TEST_ENV_LOAD"); got != "ok" {
		t.Fatalf("expected env var loaded, got %q", got)
	}
}

func TestLoadEnv_NoFiles(t *testing.T) {
	tmp := t.TempDir()

	origWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("chdir: %v", err)
	}

	n, err := LoadEnv([]string{".env", ".env.local"})
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 env files loaded, got %d", n)
	}
}

func TestImportOptions_Validate(t *testing.T) {
	valid := ImportOptions{
		MaxFileSize:     1024,
		MaxRows:         100,
		MaxPayloadBytes: 1024,
		BatchSize:       50,
		YieldEvery:      10,
		SampleSize:      5,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid options, got %v", err)
	}

	bad := valid
	bad.BatchSize = 0
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for zero batch size")
	}

	bad = valid
	bad.MaxRows = -1
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for negative max rows")
	}
}

func TestValidateScope(t *testing.T) {
	c := &Configuration{ScopeEnforce: "ENFORCE", Database: DatabaseOptions{User: "fieldtrak"}}
	if err := c.validateScope(); err != nil {
		t.Fatalf("expected enforce to be accepted, got %v", err)
	}
	if c.ScopeEnforce != "enforce" {
		t.Fatalf("expected normalized mode, got %q", c.ScopeEnforce)
	}

	c = &Configuration{ScopeEnforce: "enforce", Database: DatabaseOptions{User: "postgres"}}
	if err := c.validateScope(); err == nil {
		t.Fatal("expected superuser rejection under enforce")
	}

	c = &Configuration{ScopeEnforce: "whatever"}
	if err := c.validateScope(); err == nil {
		t.Fatal("expected invalid mode rejection")
	}
}
