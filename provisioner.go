package postgres

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/jackc/pglogrepl"
	"github.com/jackc/pgx/v5/pgconn"
)

type Provisioner struct {
	ErrorHandler ErrorHandleProc
	Logger       *log.Logger
	Config       *Config

	conn *pgconn.PgConn

	mutex       sync.Mutex
	initialized bool
	opened      bool
	disposed    bool
}

func (p *Provisioner) Open(ctx context.Context) error {
	if p.disposed {
		return fmt.Errorf("the Provisioner has been disposed")
	}
	if p.opened {
		return fmt.Errorf("the Provisioner is opened")
	}

	var err error
	p.mutex.Lock()
	defer func() {
		if err != nil {
			p.opened = false
			p.disposed = true
		}
		p.mutex.Unlock()
	}()
	p.init()

	conn, err := p.createConn(ctx)
	if err != nil {
		return err
	}
	p.conn = conn
	p.opened = true

	sysident, err := pglogrepl.IdentifySystem(ctx, conn)
	if err != nil {
		return err
	}

	p.Logger.Println(
		"SystemID:", sysident.SystemID,
		"Timeline:", sysident.Timeline,
		"XLogPos:", sysident.XLogPos,
		"DBName:", sysident.DBName)

	return nil
}

func (p *Provisioner) Close() {
	if p.disposed {
		return
	}

	p.mutex.Lock()
	p.opened = false

	defer func() {
		p.disposed = true
		// dispose
		p.mutex.Unlock()
	}()

	if p.conn != nil {
		p.conn.Close(context.Background())
	}
}

func (p *Provisioner) IdentifySystem(ctx context.Context) (pglogrepl.IdentifySystemResult, error) {
	if err := p.ensureOpened(); err != nil {
		return pglogrepl.IdentifySystemResult{}, err
	}

	return pglogrepl.IdentifySystem(ctx, p.conn)
}

func (p *Provisioner) CreateRole(ctx context.Context, source CreateRoleSource) (*CreateRoleResult, error) {
	if err := p.ensureOpened(); err != nil {
		return nil, err
	}

	return CreateRole(ctx, p.conn, source)
}

func (p *Provisioner) DropRole(ctx context.Context, roleName string) error {
	if err := p.ensureOpened(); err != nil {
		return err
	}

	return DropRole(ctx, p.conn, roleName)
}

func (p *Provisioner) CreateReplicationSlot(ctx context.Context, source CreateReplicationSlotSource) (*CreateReplicationSlotResult, error) {
	if err := p.ensureOpened(); err != nil {
		return nil, err
	}

	return CreateReplicationSlot(ctx, p.conn, source)
}

func (p *Provisioner) DropReplicationSlot(ctx context.Context, slotName string) error {
	if err := p.ensureOpened(); err != nil {
		return err
	}

	return DropReplicationSlot(ctx, p.conn, slotName)
}

func (p *Provisioner) SelectRole(ctx context.Context, roles []string) ([]RoleSource, error) {
	if err := p.ensureOpened(); err != nil {
		return nil, err
	}

	return SelectRole(ctx, p.conn, roles)
}

func (p *Provisioner) SelectReplicationSlot(ctx context.Context, slots []string) ([]ReplicationSlotSource, error) {
	if err := p.ensureOpened(); err != nil {
		return nil, err
	}

	return SelectReplicationSlot(ctx, p.conn, slots)
}

// Apply provisions every given role then every given slot. The two groups
// touch disjoint catalogs, so neither ordering nor the other group's outcome
// affects a member. A duplicate name is tolerated only when the source is
// marked IfNotExists.
func (p *Provisioner) Apply(ctx context.Context, roles []CreateRoleSource, slots []CreateReplicationSlotSource) (*ApplyResult, error) {
	if err := p.ensureOpened(); err != nil {
		return nil, err
	}

	var result ApplyResult

	for _, source := range roles {
		status := ApplyStatus{
			Kind: ApplyKindRole,
			Name: source.RoleName,
		}

		created, err := CreateRole(ctx, p.conn, source)
		switch {
		case err == nil:
			status.State = ApplyStateCreated
			status.GeneratedPassword = created.GeneratedPassword
		case IsAlreadyExistsError(err) && source.IfNotExists:
			status.State = ApplyStateAlreadyExists
			p.Logger.Printf("role '%s' already exists", source.RoleName)
		default:
			status.State = ApplyStateFailed
			status.Err = err
			if !p.handleError(err) {
				result.Roles = append(result.Roles, status)
				return &result, err
			}
		}
		result.Roles = append(result.Roles, status)
	}

	for _, source := range slots {
		status := ApplyStatus{
			Kind: ApplyKindSlot,
			Name: source.SlotName,
		}

		created, err := CreateReplicationSlot(ctx, p.conn, source)
		switch {
		case err == nil:
			status.State = ApplyStateCreated
			status.ConsistentPoint = created.ConsistentPoint
			p.Logger.Printf("replication slot '%s' retains WAL from %s", source.SlotName, created.ConsistentPoint)
		case IsAlreadyExistsError(err) && source.IfNotExists:
			status.State = ApplyStateAlreadyExists
			p.Logger.Printf("replication slot '%s' already exists", source.SlotName)
		default:
			status.State = ApplyStateFailed
			status.Err = err
			if !p.handleError(err) {
				result.Slots = append(result.Slots, status)
				return &result, err
			}
		}
		result.Slots = append(result.Slots, status)
	}

	return &result, nil
}

func (p *Provisioner) init() {
	if p.initialized {
		return
	}

	if p.Config == nil {
		p.Config = NewConfig()
	}

	if p.Logger == nil {
		p.Logger = defaultLogger
	}

	p.initialized = true
}

func (p *Provisioner) ensureOpened() error {
	if p.disposed {
		return fmt.Errorf("the Provisioner has been disposed")
	}
	if !p.opened {
		return fmt.Errorf("the Provisioner is not opened")
	}
	return nil
}

func (p *Provisioner) handleError(err error) (disposed bool) {
	if p.ErrorHandler != nil {
		return p.ErrorHandler(err)
	}
	return false
}

func (p *Provisioner) createConn(ctx context.Context) (*pgconn.PgConn, error) {
	p.Config.init()

	config, err := pgconn.ParseConfig(fmt.Sprintf("postgres://%s?replication=database", p.Config.Host))
	if err != nil {
		panic(err)
	}
	config.Port = p.Config.Port
	config.User = p.Config.User
	config.Password = p.Config.Password
	config.Database = p.Config.Database
	config.ConnectTimeout = p.Config.ConnectTimeout

	return pgconn.ConnectConfig(ctx, config)
}
