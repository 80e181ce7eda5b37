package postgres

type RoleSource struct {
	RoleName    string
	Login       bool
	Replication bool
	Superuser   bool
	CreateDB    bool
	CreateRole  bool
	ConnLimit   int
}

func (r RoleSource) Capabilities() RoleCapabilities {
	var set RoleCapabilities
	if r.Login {
		set = set.With(RoleCapabilityLogin)
	}
	if r.Replication {
		set = set.With(RoleCapabilityReplication)
	}
	if r.Superuser {
		set = set.With(RoleCapabilitySuperuser)
	}
	if r.CreateDB {
		set = set.With(RoleCapabilityCreateDB)
	}
	if r.CreateRole {
		set = set.With(RoleCapabilityCreateRole)
	}
	return set
}
