package postgres

import (
	"encoding/json"
)

var (
	_ json.Unmarshaler = new(CreateRoleSource)
)

type CreateRoleSource struct {
	RoleName         string           `json:"RoleName"`
	Password         string           `json:"Password"`
	GeneratePassword bool             `json:"GeneratePassword"`
	Capabilities     RoleCapabilities `json:"Capabilities"`
	IfNotExists      bool             `json:"IfNotExists"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *CreateRoleSource) UnmarshalJSON(data []byte) error {
	type Alias CreateRoleSource
	s := &struct {
		*Alias
		Capabilities []string `json:"Capabilities"`
	}{
		Alias: (*Alias)(c),
	}

	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	set, err := ParseRoleCapabilities(s.Capabilities)
	if err != nil {
		return err
	}
	c.Capabilities = set

	return nil
}
