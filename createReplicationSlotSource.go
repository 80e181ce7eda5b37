package postgres

import (
	"encoding/json"
)

var (
	_ json.Unmarshaler = new(CreateReplicationSlotSource)
)

type CreateReplicationSlotSource struct {
	SlotName  string `json:"SlotName"`
	Plugin    string `json:"Plugin"`
	Temporary bool   `json:"Temporary"`
	// SlotType left at its zero value is treated as physical unless a Plugin
	// is set; the zero ReplicationMode is logical.
	SlotType       ReplicationMode `json:"SlotType"`
	SnapshotAction string          `json:"SnapshotAction"`
	IfNotExists    bool            `json:"IfNotExists"`
}

// slotMode resolves the zero-value ambiguity of SlotType. A logical slot
// always names a plugin, so a plugin-less logical source is taken as physical.
func (c CreateReplicationSlotSource) slotMode() ReplicationMode {
	if c.SlotType == LogicalReplication && len(c.Plugin) == 0 {
		return PhysicalReplication
	}
	return c.SlotType
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *CreateReplicationSlotSource) UnmarshalJSON(data []byte) error {
	type Alias CreateReplicationSlotSource
	s := &struct {
		*Alias
		SlotType string `json:"SlotType"`
	}{
		Alias: (*Alias)(c),
	}

	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	// the zero ReplicationMode is logical; an absent SlotType means physical here
	if len(s.SlotType) == 0 {
		c.SlotType = PhysicalReplication
		return nil
	}

	t, err := ParseReplicationMode(s.SlotType)
	if err != nil {
		return err
	}
	c.SlotType = t

	return nil
}
