package catalog

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store holds the connection pools of the catalog service. Reads are served
// by the replica, writes go to the primary.
type Store struct {
	Primary *pgxpool.Pool
	Replica *pgxpool.Pool
}

func Connect(ctx context.Context, cfg Config) (*Store, error) {
	primary, err := connectPool(ctx, cfg.PrimaryDSN(), cfg)
	if err != nil {
		return nil, err
	}

	replica, err := connectPool(ctx, cfg.ReplicaDSN(), cfg)
	if err != nil {
		primary.Close()
		return nil, err
	}

	return &Store{
		Primary: primary,
		Replica: replica,
	}, nil
}

func (s *Store) Close() {
	if s.Primary != nil {
		s.Primary.Close()
	}
	if s.Replica != nil {
		s.Replica.Close()
	}
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.Primary.Ping(ctx); err != nil {
		return err
	}
	return s.Replica.Ping(ctx)
}

func connectPool(ctx context.Context, dsn string, cfg Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	poolCfg.MinConns = cfg.PoolMin
	poolCfg.MaxConns = cfg.PoolMax

	return pgxpool.NewWithConfig(ctx, poolCfg)
}
