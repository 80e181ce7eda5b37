package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	postgres "github.com/Bofry/lib-postgres-provision"
)

func TestProvisioner_NotOpened(t *testing.T) {
	var p postgres.Provisioner

	_, err := p.CreateRole(context.Background(), postgres.CreateRoleSource{
		RoleName: "replicator",
		Password: "replicator_password",
	})
	if err == nil {
		t.Fatal("expected an error")
	}

	if _, err = p.Apply(context.Background(), nil, nil); err == nil {
		t.Fatal("expected an error")
	}
}

func TestProvisioner_Disposed(t *testing.T) {
	var p postgres.Provisioner
	p.Close()

	err := p.Open(context.Background())
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestProvisioner_Apply(t *testing.T) {
	host := os.Getenv("PGPROVISION_TEST_HOST")
	if len(host) == 0 {
		t.Skip("PGPROVISION_TEST_HOST not set")
	}

	p := &postgres.Provisioner{
		Config: &postgres.Config{
			Host:           host,
			User:           os.Getenv("PGPROVISION_TEST_USER"),
			Password:       os.Getenv("PGPROVISION_TEST_PASSWORD"),
			Database:       os.Getenv("PGPROVISION_TEST_DATABASE"),
			ConnectTimeout: 10 * time.Second,
		},
	}

	if err := p.Open(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	roles := []postgres.CreateRoleSource{
		{
			RoleName: "pgprovision_apply_role",
			Password: "pgprovision_apply_password",
			Capabilities: postgres.RoleCapabilities(0).
				With(postgres.RoleCapabilityLogin).
				With(postgres.RoleCapabilityReplication),
			IfNotExists: true,
		},
	}
	slots := []postgres.CreateReplicationSlotSource{
		{
			SlotName:    "pgprovision_apply_slot",
			SlotType:    postgres.PhysicalReplication,
			IfNotExists: true,
		},
	}

	result, err := p.Apply(context.Background(), roles, slots)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		p.DropReplicationSlot(context.Background(), "pgprovision_apply_slot")
		p.DropRole(context.Background(), "pgprovision_apply_role")
	}()

	if len(result.Failed()) != 0 {
		t.Fatalf("unexpected failures: %+v", result.Failed())
	}

	// applying again must tolerate both duplicates
	result, err = p.Apply(context.Background(), roles, slots)
	if err != nil {
		t.Fatal(err)
	}
	for _, status := range append(result.Roles, result.Slots...) {
		if status.State != postgres.ApplyStateAlreadyExists {
			t.Errorf("%s %s: expected already-exists, got %s", status.Kind, status.Name, status.State)
		}
	}
}
