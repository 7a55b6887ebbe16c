package main

import (
	"github.com/Luismorlan/socialmux/utils"
	. "github.com/Luismorlan/socialmux/utils/log"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := utils.GetDBConnection()
		if err != nil {
			return err
		}
		if err := utils.DatabaseSetupAndMigration(db); err != nil {
			return err
		}
		Log.Info("database migrated")
		return nil
	},
}
