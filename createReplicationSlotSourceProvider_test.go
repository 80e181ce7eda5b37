package postgres_test

import (
	"testing"

	postgres "github.com/Bofry/lib-postgres-provision"
)

func TestCreateReplicationSlotSourceProvider(t *testing.T) {
	var p postgres.CreateReplicationSlotSourceProvider
	p.AppendSource(postgres.CreateReplicationSlotSource{
		SlotName: "replication_slot",
		SlotType: postgres.PhysicalReplication,
	})

	err := p.ScanString(`[
{
	"SlotName": "cdc_slot",
	"Plugin": "wal2json",
	"SlotType": "logical"
}
]`)
	if err != nil {
		t.Fatal(err)
	}

	sources := p.Sources()
	if len(sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(sources))
	}
	if sources[0].SlotType != postgres.PhysicalReplication {
		t.Errorf("expected physical slot, got %v", sources[0].SlotType)
	}
	if sources[1].SlotType != postgres.LogicalReplication {
		t.Errorf("expected logical slot, got %v", sources[1].SlotType)
	}
}
