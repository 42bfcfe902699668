package main

import (
	"context"

	"github.com/MDharunPrasad/giglabs-intern-venture/apps"
	"github.com/MDharunPrasad/giglabs-intern-venture/storage/database"
)

var gooseRunFunc = database.RunMigrations // mockable

func (cli *commandLine) migrate(args []string) error {
	if cli.db == nil {
		return apps.NewArgumentError("migrate requires the postgres storage driver")
	}
	return gooseRunFunc(context.Background(), cli.db, args[0], args[1:]...)
}
