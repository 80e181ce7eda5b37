package postgres

import (
	"testing"

	"github.com/jackc/pglogrepl"
)

func TestConfigureSlotOptions(t *testing.T) {
	options := ConfigureSlotOptions().
		WithTemporary().
		WithSnapshotAction("export").
		WithSlotType(LogicalReplication)

	var target pglogrepl.CreateReplicationSlotOptions
	for _, opt := range options {
		opt.applyCreateReplicationSlotOptions(&target)
	}

	if !target.Temporary {
		t.Error("expected Temporary")
	}
	if target.SnapshotAction != "export" {
		t.Errorf("expected SnapshotAction 'export', got '%s'", target.SnapshotAction)
	}
	if target.Mode != LogicalReplication {
		t.Errorf("expected logical mode, got %v", target.Mode)
	}
}
