package catalog

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config holds runtime configuration for the catalog service.
type Config struct {
	Addr string `env:"ADDR,default=:8080"`

	PrimaryHost     string `env:"PRIMARY_HOST,default=localhost"`
	PrimaryPort     uint16 `env:"PRIMARY_PORT,default=5432"`
	PrimaryDB       string `env:"PRIMARY_DB,default=postgres"`
	PrimaryUser     string `env:"PRIMARY_USER,default=user"`
	PrimaryPassword string `env:"PRIMARY_PASSWORD,default=password"`

	ReplicaHost     string `env:"REPLICA_HOST,default=localhost"`
	ReplicaPort     uint16 `env:"REPLICA_PORT,default=5433"`
	ReplicaDB       string `env:"REPLICA_DB,default=postgres"`
	ReplicaUser     string `env:"REPLICA_USER,default=user"`
	ReplicaPassword string `env:"REPLICA_PASSWORD,default=password"`

	// AdminToken guards the /admin routes. Set a strong value in production.
	AdminToken string `env:"ADMIN_TOKEN,default=token"`

	PoolMin int32 `env:"DB_POOL_MIN,default=1"`
	PoolMax int32 `env:"DB_POOL_MAX,default=10"`
}

// LoadConfig returns a Config populated from environment variables.
func LoadConfig(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) PrimaryDSN() string {
	return buildDSN(c.PrimaryHost, c.PrimaryPort, c.PrimaryDB, c.PrimaryUser, c.PrimaryPassword)
}

func (c Config) ReplicaDSN() string {
	return buildDSN(c.ReplicaHost, c.ReplicaPort, c.ReplicaDB, c.ReplicaUser, c.ReplicaPassword)
}

func buildDSN(host string, port uint16, database string, user string, password string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s", user, password, host, port, database)
}
