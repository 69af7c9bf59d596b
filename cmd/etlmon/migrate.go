package main

import (
	"fmt"

	"github.com/voidshard/etlmon/pkg/database"
	"github.com/voidshard/etlmon/pkg/errors"
)

const (
	docMigrate = `Manage the database schema.

Actions are "up" (the default), "down" which drops every recorded
execution, and "version" which prints the applied schema version.`
)

type optsMigrate struct {
	optsGeneral
	optsDatabase

	Args struct {
		Action string `positional-arg-name:"action" description:"up, down or version"`
	} `positional-args:"yes"`
}

func (c *optsMigrate) Execute(args []string) error {
	cfg, err := c.load()
	if err != nil {
		return err
	}
	log, err := c.logger()
	if err != nil {
		return err
	}
	defer log.Sync()

	opts := c.optsDatabase.options(cfg)

	switch c.Args.Action {
	case "", "up":
		err = database.Migrate(opts)
	case "down":
		err = database.MigrateDown(opts)
	case "version":
		v, dirty, verr := database.MigrateVersion(opts)
		if verr != nil {
			return verr
		}
		fmt.Printf("version %d dirty %v\n", v, dirty)
		return nil
	default:
		return errors.Newf("unknown migrate action %q", c.Args.Action)
	}
	if err != nil {
		return err
	}

	log.Infow("migrated", "action", actionName(c.Args.Action))
	return nil
}

func actionName(action string) string {
	if action == "" {
		return "up"
	}
	return action
}
