package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jackc/pglogrepl"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sethvargo/go-password/password"
)

func ParseReplicationMode(s string) (ReplicationMode, error) {
	switch strings.ToUpper(s) {
	case LogicalReplication.String():
		return LogicalReplication, nil
	case PhysicalReplication.String():
		return PhysicalReplication, nil
	}
	return 0, fmt.Errorf("unsupported slot type '%s'", s)
}

func SelectReplicationSlot(ctx context.Context, conn *pgconn.PgConn, slots []string) (records []ReplicationSlotSource, err error) {
	if len(slots) == 0 {
		return
	}

	var slotParam []string = make([]string, len(slots))
	for i, slot := range slots {
		param, err := conn.EscapeString(slot)
		if err != nil {
			return nil, err
		}
		slotParam[i] = "'" + param + "'"
	}

	sql := fmt.Sprintf(__SQL_SELECT_REPLICATION_SLOT, strings.Join(slotParam, ","))
	reader := conn.Exec(ctx, sql)
	result, err := reader.ReadAll()
	if err != nil {
		return
	}
	for _, r := range result {
		if len(r.Rows) > 0 {
			records = make([]ReplicationSlotSource, len(r.Rows))
			for i, v := range r.Rows {
				r := ReplicationSlotSource{
					SlotName: string(v[0]),
					Plugin:   string(v[1]),
					Database: string(v[3]),
				}
				{
					t, err := ParseReplicationMode(string(v[2]))
					if err != nil {
						return nil, err
					}
					r.SlotType = t
				}
				{
					b, err := strconv.ParseBool(string(v[4]))
					if err != nil {
						return nil, err
					}
					r.Temporary = b
				}
				{
					b, err := strconv.ParseBool(string(v[5]))
					if err != nil {
						return nil, err
					}
					r.Active = b
				}
				// physical slots report no confirmed_flush_lsn; leave zero on null
				r.RestartLSN.Scan(string(v[6]))
				r.ConfirmedFlushLSN.Scan(string(v[7]))

				records[i] = r
			}
			return
		}
	}
	return
}

func CheckMissingReplicationSlot(ctx context.Context, conn *pgconn.PgConn, slots []string) (missing []string, err error) {
	if len(slots) == 0 {
		return
	}

	records, err := SelectReplicationSlot(ctx, conn, slots)
	if err != nil {
		return nil, err
	}

	var existed = make(map[string]struct{}, len(records))
	for _, r := range records {
		existed[r.SlotName] = struct{}{}
	}
	for _, slot := range slots {
		if _, ok := existed[slot]; !ok {
			missing = append(missing, slot)
		}
	}
	return
}

func SelectRole(ctx context.Context, conn *pgconn.PgConn, roles []string) (records []RoleSource, err error) {
	if len(roles) == 0 {
		return
	}

	var roleParam []string = make([]string, len(roles))
	for i, role := range roles {
		param, err := conn.EscapeString(role)
		if err != nil {
			return nil, err
		}
		roleParam[i] = "'" + param + "'"
	}

	sql := fmt.Sprintf(__SQL_SELECT_ROLE, strings.Join(roleParam, ","))
	reader := conn.Exec(ctx, sql)
	result, err := reader.ReadAll()
	if err != nil {
		return
	}
	for _, r := range result {
		if len(r.Rows) > 0 {
			records = make([]RoleSource, len(r.Rows))
			for i, v := range r.Rows {
				r := RoleSource{
					RoleName: string(v[0]),
				}
				var flags = []*bool{
					&r.Login,
					&r.Replication,
					&r.Superuser,
					&r.CreateDB,
					&r.CreateRole,
				}
				for j, flag := range flags {
					b, err := strconv.ParseBool(string(v[j+1]))
					if err != nil {
						return nil, err
					}
					*flag = b
				}
				{
					n, err := strconv.Atoi(string(v[6]))
					if err != nil {
						return nil, err
					}
					r.ConnLimit = n
				}

				records[i] = r
			}
			return
		}
	}
	return
}

func CheckMissingRole(ctx context.Context, conn *pgconn.PgConn, roles []string) (missing []string, err error) {
	if len(roles) == 0 {
		return
	}

	records, err := SelectRole(ctx, conn, roles)
	if err != nil {
		return nil, err
	}

	var existed = make(map[string]struct{}, len(records))
	for _, r := range records {
		existed[r.RoleName] = struct{}{}
	}
	for _, role := range roles {
		if _, ok := existed[role]; !ok {
			missing = append(missing, role)
		}
	}
	return
}

func CreateRole(ctx context.Context, conn *pgconn.PgConn, source CreateRoleSource) (*CreateRoleResult, error) {
	result := CreateRoleResult{
		RoleName: source.RoleName,
	}

	if source.GeneratePassword && len(source.Password) == 0 {
		generated, err := GeneratePassword()
		if err != nil {
			return nil, NewProvisionError("create role", source.RoleName, err)
		}
		source.Password = generated
		result.GeneratedPassword = generated
	}

	sql, err := buildCreateRoleCommand(source)
	if err != nil {
		return nil, err
	}

	reader := conn.Exec(ctx, sql)
	_, err = reader.ReadAll()
	if err != nil {
		return nil, NewProvisionError("create role", source.RoleName, err)
	}
	return &result, nil
}

func DropRole(ctx context.Context, conn *pgconn.PgConn, roleName string) error {
	if err := validateIdentifier(roleName); err != nil {
		return newInvalidArgumentError("drop role", roleName, err)
	}

	sql := fmt.Sprintf("DROP ROLE %s;", pgx.Identifier{roleName}.Sanitize())
	reader := conn.Exec(ctx, sql)
	_, err := reader.ReadAll()
	if err != nil {
		return NewProvisionError("drop role", roleName, err)
	}
	return nil
}

func CreateReplicationSlot(ctx context.Context, conn *pgconn.PgConn, source CreateReplicationSlotSource) (*CreateReplicationSlotResult, error) {
	if err := validateIdentifier(source.SlotName); err != nil {
		return nil, newInvalidArgumentError("create replication slot", source.SlotName, err)
	}

	result, err := pglogrepl.CreateReplicationSlot(ctx, conn,
		source.SlotName,
		source.Plugin,
		pglogrepl.CreateReplicationSlotOptions{
			Temporary:      source.Temporary,
			SnapshotAction: source.SnapshotAction,
			Mode:           source.slotMode(),
		})
	if err != nil {
		return nil, NewProvisionError("create replication slot", source.SlotName, err)
	}
	return importCreateReplicationSlotResult(result)
}

func CreatePhysicalReplicationSlot(ctx context.Context, conn *pgconn.PgConn, slotName string, options ...SlotOption) (*CreateReplicationSlotResult, error) {
	if err := validateIdentifier(slotName); err != nil {
		return nil, newInvalidArgumentError("create replication slot", slotName, err)
	}

	var opt = pglogrepl.CreateReplicationSlotOptions{
		Mode: PhysicalReplication,
	}
	for _, o := range options {
		o.applyCreateReplicationSlotOptions(&opt)
	}

	result, err := pglogrepl.CreateReplicationSlot(ctx, conn, slotName, "", opt)
	if err != nil {
		return nil, NewProvisionError("create replication slot", slotName, err)
	}
	return importCreateReplicationSlotResult(result)
}

func DropReplicationSlot(ctx context.Context, conn *pgconn.PgConn, slotName string) error {
	err := pglogrepl.DropReplicationSlot(ctx, conn, slotName,
		pglogrepl.DropReplicationSlotOptions{
			Wait: true,
		})
	if err != nil {
		return NewProvisionError("drop replication slot", slotName, err)
	}
	return nil
}

func GeneratePassword() (string, error) {
	return password.Generate(64, 10, 0, false, true)
}

func LoadCreateRoleSource(filepath string) ([]CreateRoleSource, error) {
	buf, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}

	return ParseCreateRoleSource(buf)
}

func ParseCreateRoleSource(buf []byte) ([]CreateRoleSource, error) {
	var source []CreateRoleSource
	err := json.Unmarshal([]byte(buf), &source)
	if err != nil {
		return nil, err
	}
	return source, nil
}

func LoadCreateReplicationSlotSource(filepath string) ([]CreateReplicationSlotSource, error) {
	buf, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}

	return ParseCreateReplicationSlotSource(buf)
}

func ParseCreateReplicationSlotSource(buf []byte) ([]CreateReplicationSlotSource, error) {
	var source []CreateReplicationSlotSource
	err := json.Unmarshal([]byte(buf), &source)
	if err != nil {
		return nil, err
	}
	return source, nil
}

func buildCreateRoleCommand(source CreateRoleSource) (string, error) {
	if err := validateIdentifier(source.RoleName); err != nil {
		return "", newInvalidArgumentError("create role", source.RoleName, err)
	}
	if len(source.Password) == 0 {
		return "", newInvalidArgumentError("create role", source.RoleName,
			fmt.Errorf("password must not be empty"))
	}

	var sb strings.Builder
	sb.WriteString("CREATE ROLE ")
	sb.WriteString(pgx.Identifier{source.RoleName}.Sanitize())
	for _, name := range source.Capabilities.Names() {
		sb.WriteString(" ")
		sb.WriteString(name)
	}
	sb.WriteString(" PASSWORD ")
	sb.WriteString(quoteLiteral(source.Password))
	sb.WriteString(";")
	return sb.String(), nil
}

func validateIdentifier(name string) error {
	if len(strings.TrimSpace(name)) == 0 {
		return fmt.Errorf("identifier must not be empty")
	}
	if strings.ContainsRune(name, 0) {
		return fmt.Errorf("identifier must not contain NUL")
	}
	return nil
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
