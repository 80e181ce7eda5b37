package postgres_test

import (
	"encoding/json"
	"testing"

	postgres "github.com/Bofry/lib-postgres-provision"
)

func TestCreateReplicationSlotSource(t *testing.T) {
	var data = `{
	"SlotName": "replication_slot",
	"SlotType": "physical"
}
`

	var source postgres.CreateReplicationSlotSource
	err := json.Unmarshal([]byte(data), &source)
	if err != nil {
		t.Fatalf("error: %v", err)
	}

	if source.SlotName != "replication_slot" {
		t.Errorf("expected SlotName 'replication_slot', got '%s'", source.SlotName)
	}
	if source.SlotType != postgres.PhysicalReplication {
		t.Errorf("expected physical slot, got %v", source.SlotType)
	}
}

func TestCreateReplicationSlotSource_DefaultSlotType(t *testing.T) {
	var data = `{
	"SlotName": "replication_slot"
}
`

	var source postgres.CreateReplicationSlotSource
	err := json.Unmarshal([]byte(data), &source)
	if err != nil {
		t.Fatalf("error: %v", err)
	}

	if source.SlotType != postgres.PhysicalReplication {
		t.Errorf("expected physical slot by default, got %v", source.SlotType)
	}
}

func TestCreateReplicationSlotSource_Set(t *testing.T) {
	var data = `[
{
	"SlotName": "replication_slot",
	"SlotType": "physical"
},
{
	"SlotName": "cdc_slot",
	"Plugin": "wal2json",
	"Temporary": false,
	"SlotType": "logical"
}
]
`

	source, err := postgres.ParseCreateReplicationSlotSource([]byte(data))
	if err != nil {
		t.Fatalf("error: %v", err)
	}

	if len(source) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(source))
	}
	if source[0].SlotType != postgres.PhysicalReplication {
		t.Errorf("expected physical slot, got %v", source[0].SlotType)
	}
	if source[1].SlotType != postgres.LogicalReplication {
		t.Errorf("expected logical slot, got %v", source[1].SlotType)
	}
	if source[1].Plugin != postgres.Wal2JsonPlugin {
		t.Errorf("expected wal2json plugin, got '%s'", source[1].Plugin)
	}
}

func TestCreateReplicationSlotSource_UnknownSlotType(t *testing.T) {
	var data = `{
	"SlotName": "replication_slot",
	"SlotType": "streaming"
}
`

	var source postgres.CreateReplicationSlotSource
	err := json.Unmarshal([]byte(data), &source)
	if err == nil {
		t.Fatal("expected an error")
	}
}
