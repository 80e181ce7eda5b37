package postgres_test

import (
	"reflect"
	"testing"

	postgres "github.com/Bofry/lib-postgres-provision"
)

func TestParseRoleCapabilities(t *testing.T) {
	set, err := postgres.ParseRoleCapabilities([]string{"login", "REPLICATION"})
	if err != nil {
		t.Fatal(err)
	}

	expected := []string{"LOGIN", "REPLICATION"}
	if !reflect.DeepEqual(expected, set.Names()) {
		t.Errorf("expected: %+v, got: %+v", expected, set.Names())
	}
}

func TestRoleCapabilities_Has(t *testing.T) {
	set := postgres.RoleCapabilities(0).
		With(postgres.RoleCapabilityLogin).
		With(postgres.RoleCapabilityReplication)

	if !set.Has(postgres.RoleCapabilityLogin) {
		t.Error("expected LOGIN")
	}
	if set.Has(postgres.RoleCapabilityCreateDB) {
		t.Error("unexpected CREATEDB")
	}
}

func TestRoleSource_Capabilities(t *testing.T) {
	record := postgres.RoleSource{
		RoleName:    "replicator",
		Login:       true,
		Replication: true,
	}

	set := record.Capabilities()
	expected := []string{"LOGIN", "REPLICATION"}
	if !reflect.DeepEqual(expected, set.Names()) {
		t.Errorf("expected: %+v, got: %+v", expected, set.Names())
	}
}
