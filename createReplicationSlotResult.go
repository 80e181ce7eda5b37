package postgres

import (
	"github.com/jackc/pglogrepl"
)

type CreateReplicationSlotResult struct {
	SlotName string
	// ConsistentPoint is the log position at which the server began retaining
	// WAL for the slot. Retention holds until the slot is consumed or dropped.
	ConsistentPoint LSN
	SnapshotName    string
	OutputPlugin    string
}

func importCreateReplicationSlotResult(result pglogrepl.CreateReplicationSlotResult) (*CreateReplicationSlotResult, error) {
	var r = CreateReplicationSlotResult{
		SlotName:     result.SlotName,
		SnapshotName: result.SnapshotName,
		OutputPlugin: result.OutputPlugin,
	}
	if len(result.ConsistentPoint) > 0 {
		lsn, err := pglogrepl.ParseLSN(result.ConsistentPoint)
		if err != nil {
			return nil, err
		}
		r.ConsistentPoint = lsn
	}
	return &r, nil
}
