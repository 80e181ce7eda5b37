package postgres

import (
	"fmt"
	"strings"
)

type RoleCapability int

const (
	RoleCapabilityLogin RoleCapability = 1 << iota
	RoleCapabilityReplication
	RoleCapabilitySuperuser
	RoleCapabilityCreateDB
	RoleCapabilityCreateRole
)

func (c RoleCapability) String() string {
	switch c {
	case RoleCapabilityLogin:
		return "LOGIN"
	case RoleCapabilityReplication:
		return "REPLICATION"
	case RoleCapabilitySuperuser:
		return "SUPERUSER"
	case RoleCapabilityCreateDB:
		return "CREATEDB"
	case RoleCapabilityCreateRole:
		return "CREATEROLE"
	}
	return ""
}

func ParseRoleCapability(s string) (RoleCapability, error) {
	switch strings.ToUpper(s) {
	case RoleCapabilityLogin.String():
		return RoleCapabilityLogin, nil
	case RoleCapabilityReplication.String():
		return RoleCapabilityReplication, nil
	case RoleCapabilitySuperuser.String():
		return RoleCapabilitySuperuser, nil
	case RoleCapabilityCreateDB.String():
		return RoleCapabilityCreateDB, nil
	case RoleCapabilityCreateRole.String():
		return RoleCapabilityCreateRole, nil
	}
	return 0, fmt.Errorf("unsupported role capability '%s'", s)
}

type RoleCapabilities int

func (set RoleCapabilities) Has(c RoleCapability) bool {
	return int(set)&int(c) == int(c)
}

func (set RoleCapabilities) With(c RoleCapability) RoleCapabilities {
	return RoleCapabilities(int(set) | int(c))
}

func (set RoleCapabilities) Names() []string {
	var names []string
	for _, c := range []RoleCapability{
		RoleCapabilityLogin,
		RoleCapabilityReplication,
		RoleCapabilitySuperuser,
		RoleCapabilityCreateDB,
		RoleCapabilityCreateRole,
	} {
		if set.Has(c) {
			names = append(names, c.String())
		}
	}
	return names
}

func ParseRoleCapabilities(values []string) (RoleCapabilities, error) {
	var set RoleCapabilities
	for _, v := range values {
		c, err := ParseRoleCapability(v)
		if err != nil {
			return 0, err
		}
		set = set.With(c)
	}
	return set, nil
}
