package database

import (
	"undangan.link/configs"
	"undangan.link/configs/configsdatabase"
	"undangan.link/configs/configslog"

	"github.com/spf13/cobra"
)

// NewCommand returns the "db" command that migrates and seeds the database.
func NewCommand() *cobra.Command {
	var migrate, seed bool
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Run database migrations and seeders",
		RunE: func(cmd *cobra.Command, args []string) error {
			configs.LoadEnv()
			configsdatabase.InitDB()
			defer configsdatabase.CloseDB()

			configslog.SLog.Info("Running database initialization...")
			return Initialize(configsdatabase.GetDB(), migrate, seed)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "run table migrations")
	cmd.Flags().BoolVar(&seed, "seed", false, "seed built-in themes and the super admin")
	return cmd
}
