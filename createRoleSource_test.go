package postgres_test

import (
	"encoding/json"
	"testing"

	postgres "github.com/Bofry/lib-postgres-provision"
)

func TestCreateRoleSource(t *testing.T) {
	var data = `{
	"RoleName": "replicator",
	"Password": "replicator_password",
	"Capabilities": ["LOGIN", "REPLICATION"]
}
`

	var source postgres.CreateRoleSource
	err := json.Unmarshal([]byte(data), &source)
	if err != nil {
		t.Fatalf("error: %v", err)
	}

	if source.RoleName != "replicator" {
		t.Errorf("expected RoleName 'replicator', got '%s'", source.RoleName)
	}
	if source.Password != "replicator_password" {
		t.Errorf("expected Password 'replicator_password', got '%s'", source.Password)
	}
	if !source.Capabilities.Has(postgres.RoleCapabilityLogin) {
		t.Error("expected LOGIN capability")
	}
	if !source.Capabilities.Has(postgres.RoleCapabilityReplication) {
		t.Error("expected REPLICATION capability")
	}
	if source.Capabilities.Has(postgres.RoleCapabilitySuperuser) {
		t.Error("unexpected SUPERUSER capability")
	}
}

func TestCreateRoleSource_Set(t *testing.T) {
	var data = `[
{
	"RoleName": "replicator",
	"Password": "replicator_password",
	"Capabilities": ["LOGIN", "REPLICATION"]
},
{
	"RoleName": "reporter",
	"GeneratePassword": true,
	"Capabilities": ["login"],
	"IfNotExists": true
}
]
`

	source, err := postgres.ParseCreateRoleSource([]byte(data))
	if err != nil {
		t.Fatalf("error: %v", err)
	}

	if len(source) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(source))
	}
	if !source[1].GeneratePassword {
		t.Error("expected GeneratePassword")
	}
	if !source[1].Capabilities.Has(postgres.RoleCapabilityLogin) {
		t.Error("expected LOGIN capability from lowercase input")
	}
	if !source[1].IfNotExists {
		t.Error("expected IfNotExists")
	}
}

func TestCreateRoleSource_UnknownCapability(t *testing.T) {
	var data = `{
	"RoleName": "replicator",
	"Password": "replicator_password",
	"Capabilities": ["FLY"]
}
`

	var source postgres.CreateRoleSource
	err := json.Unmarshal([]byte(data), &source)
	if err == nil {
		t.Fatal("expected an error")
	}
}
