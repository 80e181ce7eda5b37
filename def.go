package postgres

import (
	"log"
	"os"

	"github.com/jackc/pglogrepl"
)

const (
	LOGGER_PREFIX string = "[lib-postgres-provision] "

	__SQL_SELECT_REPLICATION_SLOT string = `
SELECT slot_name,
       plugin,
			 slot_type,
			 database,
			 temporary,
			 active,
			 restart_lsn,
			 confirmed_flush_lsn
  FROM "pg_catalog"."pg_replication_slots"
WHERE slot_name IN (%s);`

	__SQL_SELECT_ROLE string = `
SELECT rolname,
       rolcanlogin,
			 rolreplication,
			 rolsuper,
			 rolcreatedb,
			 rolcreaterole,
			 rolconnlimit
  FROM "pg_catalog"."pg_roles"
WHERE rolname IN (%s);`

	__PG_ERRCODE_INVALID_PARAMETER_VALUE    = "22023"
	__PG_ERRCODE_INVALID_PASSWORD           = "28P01"
	__PG_ERRCODE_INSUFFICIENT_PRIVILEGE     = "42501"
	__PG_ERRCODE_SYNTAX_ERROR               = "42601"
	__PG_ERRCODE_INVALID_NAME               = "42602"
	__PG_ERRCODE_UNDEFINED_OBJECT           = "42704"
	__PG_ERRCODE_DUPLICATE_OBJECT           = "42710"
	__PG_ERRCODE_RESERVED_NAME              = "42939"
	__PG_ERRCODE_CONFIGURATION_LIMIT_EXCEED = "53400"
	__PG_ERRCLASS_INSUFFICIENT_RESOURCES    = "53"
)

const (
	LogicalReplication  = pglogrepl.LogicalReplication
	PhysicalReplication = pglogrepl.PhysicalReplication

	Wal2JsonPlugin = "wal2json"
)

var (
	defaultLogger *log.Logger = log.New(os.Stdout, LOGGER_PREFIX, log.LstdFlags|log.Lmsgprefix)
)

type (
	LSN             = pglogrepl.LSN
	ReplicationMode = pglogrepl.ReplicationMode

	ErrorHandleProc func(err error) (disposed bool)

	SlotOption interface {
		applyCreateReplicationSlotOptions(opt *pglogrepl.CreateReplicationSlotOptions)
	}
)
