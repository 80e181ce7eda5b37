package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	postgres "github.com/Bofry/lib-postgres-provision"
	"github.com/Bofry/lib-postgres-provision/catalog"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type connFlags struct {
	host     string
	port     uint16
	database string
	user     string
	password string
}

func (f *connFlags) register(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&f.host, "host", "127.0.0.1", "Server host")
	cmd.PersistentFlags().Uint16Var(&f.port, "port", 5432, "Server port")
	cmd.PersistentFlags().StringVar(&f.database, "database", "postgres", "Database name")
	cmd.PersistentFlags().StringVar(&f.user, "user", "postgres", "Administrative user")
	cmd.PersistentFlags().StringVar(&f.password, "password", "", "Administrative password")
}

func (f *connFlags) open(ctx context.Context) (*postgres.Provisioner, error) {
	p := &postgres.Provisioner{
		Config: &postgres.Config{
			Host:           f.host,
			Port:           f.port,
			Database:       f.database,
			User:           f.user,
			Password:       f.password,
			ConnectTimeout: 10 * time.Second,
		},
	}
	if err := p.Open(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "pgprovision",
		Short:         "Provision replication roles and slots on a PostgreSQL primary",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var conn connFlags
	conn.register(cmd)

	cmd.AddCommand(newRoleCommand(&conn))
	cmd.AddCommand(newSlotCommand(&conn))
	cmd.AddCommand(newApplyCommand(&conn))
	cmd.AddCommand(newIdentifyCommand(&conn))
	cmd.AddCommand(newServeCommand())
	return cmd
}

func newRoleCommand(conn *connFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "role",
		Short: "Role provisioning operations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newRoleCreateCommand(conn))
	cmd.AddCommand(newRoleDropCommand(conn))
	return cmd
}

func newRoleCreateCommand(conn *connFlags) *cobra.Command {
	var (
		name        string
		password    string
		generate    bool
		ifNotExists bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a login role with replication privilege",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(password) == 0 && !generate {
				return errors.New("either --role-password or --generate-password is required")
			}

			ctx := commandContext(cmd)
			p, err := conn.open(ctx)
			if err != nil {
				return err
			}
			defer p.Close()

			source := postgres.CreateRoleSource{
				RoleName:         name,
				Password:         password,
				GeneratePassword: generate,
				IfNotExists:      ifNotExists,
				Capabilities: postgres.RoleCapabilities(0).
					With(postgres.RoleCapabilityLogin).
					With(postgres.RoleCapabilityReplication),
			}

			result, err := p.Apply(ctx, []postgres.CreateRoleSource{source}, nil)
			if err != nil {
				return err
			}
			for _, status := range result.Roles {
				fmt.Fprintf(cmd.OutOrStdout(), "role %s: %s\n", status.Name, status.State)
				if len(status.GeneratedPassword) > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "generated password: %s\n", status.GeneratedPassword)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "replicator", "Role name")
	cmd.Flags().StringVar(&password, "role-password", "", "Role credential (omit with --generate-password)")
	cmd.Flags().BoolVar(&generate, "generate-password", false, "Generate the role credential instead of passing it inline")
	cmd.Flags().BoolVar(&ifNotExists, "if-not-exists", false, "Tolerate an existing role with the same name")
	return cmd
}

func newRoleDropCommand(conn *connFlags) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "drop",
		Short: "Drop a role",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			p, err := conn.open(ctx)
			if err != nil {
				return err
			}
			defer p.Close()

			if err := p.DropRole(ctx, name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "role %s: dropped\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Role name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newSlotCommand(conn *connFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slot",
		Short: "Replication slot operations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newSlotCreateCommand(conn))
	cmd.AddCommand(newSlotDropCommand(conn))
	cmd.AddCommand(newSlotListCommand(conn))
	return cmd
}

func newSlotCreateCommand(conn *connFlags) *cobra.Command {
	var (
		name        string
		slotType    string
		plugin      string
		temporary   bool
		ifNotExists bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a replication slot and report its consistent point",
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := postgres.ParseReplicationMode(slotType)
			if err != nil {
				return err
			}

			ctx := commandContext(cmd)
			p, err := conn.open(ctx)
			if err != nil {
				return err
			}
			defer p.Close()

			source := postgres.CreateReplicationSlotSource{
				SlotName:    name,
				Plugin:      plugin,
				SlotType:    mode,
				Temporary:   temporary,
				IfNotExists: ifNotExists,
			}

			result, err := p.Apply(ctx, nil, []postgres.CreateReplicationSlotSource{source})
			if err != nil {
				return err
			}
			for _, status := range result.Slots {
				fmt.Fprintf(cmd.OutOrStdout(), "slot %s: %s", status.Name, status.State)
				if status.State == postgres.ApplyStateCreated {
					fmt.Fprintf(cmd.OutOrStdout(), " (consistent point %s)", status.ConsistentPoint)
				}
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "replication_slot", "Slot name")
	cmd.Flags().StringVar(&slotType, "type", "physical", "Slot type (physical or logical)")
	cmd.Flags().StringVar(&plugin, "plugin", "", "Output plugin (logical slots only)")
	cmd.Flags().BoolVar(&temporary, "temporary", false, "Drop the slot when the session ends")
	cmd.Flags().BoolVar(&ifNotExists, "if-not-exists", false, "Tolerate an existing slot with the same name")
	return cmd
}

func newSlotDropCommand(conn *connFlags) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "drop",
		Short: "Drop a replication slot and release its WAL retention",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			p, err := conn.open(ctx)
			if err != nil {
				return err
			}
			defer p.Close()

			if err := p.DropReplicationSlot(ctx, name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "slot %s: dropped\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Slot name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newSlotListCommand(conn *connFlags) *cobra.Command {
	var names []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show catalog state for the named replication slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			p, err := conn.open(ctx)
			if err != nil {
				return err
			}
			defer p.Close()

			records, err := p.SelectReplicationSlot(ctx, names)
			if err != nil {
				return err
			}
			for _, record := range records {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\tactive=%t\trestart_lsn=%s\n",
					record.SlotName, record.SlotType, record.Database, record.Active, record.RestartLSN)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&names, "name", nil, "Slot names to inspect")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newApplyCommand(conn *connFlags) *cobra.Command {
	var (
		rolesFile string
		slotsFile string
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Provision roles and slots from JSON source files",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				roles []postgres.CreateRoleSource
				slots []postgres.CreateReplicationSlotSource
				err   error
			)
			if len(rolesFile) > 0 {
				if roles, err = postgres.LoadCreateRoleSource(rolesFile); err != nil {
					return err
				}
			}
			if len(slotsFile) > 0 {
				if slots, err = postgres.LoadCreateReplicationSlotSource(slotsFile); err != nil {
					return err
				}
			}
			if len(roles) == 0 && len(slots) == 0 {
				return errors.New("nothing to apply")
			}

			ctx := commandContext(cmd)
			p, err := conn.open(ctx)
			if err != nil {
				return err
			}
			defer p.Close()

			result, err := p.Apply(ctx, roles, slots)
			if result != nil {
				for _, status := range append(result.Roles, result.Slots...) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", status.Kind, status.Name, status.State)
				}
			}
			return err
		},
	}

	cmd.Flags().StringVar(&rolesFile, "roles-file", "", "JSON file of role sources")
	cmd.Flags().StringVar(&slotsFile, "slots-file", "", "JSON file of replication slot sources")
	return cmd
}

func newIdentifyCommand(conn *connFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identify",
		Short: "Print the server identity and current log position",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			p, err := conn.open(ctx)
			if err != nil {
				return err
			}
			defer p.Close()

			sysident, err := p.IdentifySystem(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "SystemID=%s Timeline=%d XLogPos=%s DBName=%s\n",
				sysident.SystemID, sysident.Timeline, sysident.XLogPos, sysident.DBName)
			return nil
		},
	}
	return cmd
}

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the catalog HTTP service (configured from the environment)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger := log.New(os.Stdout, "[catalog] ", log.LstdFlags|log.Lmsgprefix)

			cfg, err := catalog.LoadConfig(ctx)
			if err != nil {
				return err
			}

			store, err := catalog.Connect(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			provisioner := &postgres.Provisioner{
				Logger: logger,
				Config: &postgres.Config{
					Host:     cfg.PrimaryHost,
					Port:     cfg.PrimaryPort,
					Database: cfg.PrimaryDB,
					User:     cfg.PrimaryUser,
					Password: cfg.PrimaryPassword,
				},
			}
			if err := provisioner.Open(ctx); err != nil {
				return err
			}
			defer provisioner.Close()

			api, err := catalog.NewAPI(store, provisioner, cfg, logger)
			if err != nil {
				return err
			}

			server := &http.Server{
				Addr:    cfg.Addr,
				Handler: api.Router(),
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Printf("listening on %s", cfg.Addr)
				errCh <- server.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	}
	return cmd
}

func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return ctx
}
