package postgres

import "github.com/jackc/pglogrepl"

var _ SlotOption = CreateReplicationSlotOptionsFunc(nil)

type CreateReplicationSlotOptionsFunc func(opt *pglogrepl.CreateReplicationSlotOptions)

// applyCreateReplicationSlotOptions implements SlotOption.
func (fn CreateReplicationSlotOptionsFunc) applyCreateReplicationSlotOptions(opt *pglogrepl.CreateReplicationSlotOptions) {
	fn(opt)
}

// /////////////////////////////////
func WithTemporary() SlotOption {
	return CreateReplicationSlotOptionsFunc(func(opt *pglogrepl.CreateReplicationSlotOptions) {
		opt.Temporary = true
	})
}

// /////////////////////////////////
func WithSnapshotAction(action string) SlotOption {
	return CreateReplicationSlotOptionsFunc(func(opt *pglogrepl.CreateReplicationSlotOptions) {
		opt.SnapshotAction = action
	})
}

// /////////////////////////////////
func WithSlotType(mode pglogrepl.ReplicationMode) SlotOption {
	return CreateReplicationSlotOptionsFunc(func(opt *pglogrepl.CreateReplicationSlotOptions) {
		opt.Mode = mode
	})
}
