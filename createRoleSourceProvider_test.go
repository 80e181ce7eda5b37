package postgres_test

import (
	"os"
	"path/filepath"
	"testing"

	postgres "github.com/Bofry/lib-postgres-provision"
)

func TestCreateRoleSourceProvider(t *testing.T) {
	var p postgres.CreateRoleSourceProvider
	p.AppendSource(postgres.CreateRoleSource{
		RoleName: "replicator",
		Password: "replicator_password",
		Capabilities: postgres.RoleCapabilities(0).
			With(postgres.RoleCapabilityLogin).
			With(postgres.RoleCapabilityReplication),
	})

	err := p.ScanString(`[
{
	"RoleName": "reporter",
	"GeneratePassword": true,
	"Capabilities": ["LOGIN"]
}
]`)
	if err != nil {
		t.Fatal(err)
	}

	sources := p.Sources()
	if len(sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(sources))
	}
	if sources[0].RoleName != "replicator" || sources[1].RoleName != "reporter" {
		t.Errorf("unexpected sources: %+v", sources)
	}
}

func TestCreateRoleSourceProvider_ScanFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roles.json")
	err := os.WriteFile(path, []byte(`[
{
	"RoleName": "replicator",
	"Password": "replicator_password",
	"Capabilities": ["LOGIN", "REPLICATION"]
}
]`), 0o600)
	if err != nil {
		t.Fatal(err)
	}

	var p postgres.CreateRoleSourceProvider
	if err := p.ScanFile(path); err != nil {
		t.Fatal(err)
	}

	if len(p.Sources()) != 1 {
		t.Fatalf("expected 1 source, got %d", len(p.Sources()))
	}
}
