package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

const (
	// default to a local sqlite file, good enough for a single host
	defaultDatabaseURL = "sqlite3://etlmon.db"

	defaultAddr      = "localhost:8100"
	defaultServerURL = "http://localhost:8100"
)

func main() {
	// a .env file is optional, real environment variables win
	_ = godotenv.Load()

	parser := flags.NewParser(nil, flags.Default)

	parser.AddCommand("api", "Run the API server", docApi, &optsAPI{})
	parser.AddCommand("migrate", "Manage the database schema", docMigrate, &optsMigrate{})
	parser.AddCommand("notifier", "Log alerts for finished executions", docNotifier, &optsNotifier{})

	parser.AddCommand("start", "Start an execution", docStart, &optsStart{})
	parser.AddCommand("finish", "Finish an execution", docFinish, &optsFinish{})
	parser.AddCommand("step-start", "Start a step of an execution", docStepStart, &optsStepStart{})
	parser.AddCommand("step-finish", "Finish a step", docStepFinish, &optsStepFinish{})
	parser.AddCommand("stats", "Print execution statistics", docStats, &optsStats{})

	if _, err := parser.Parse(); err != nil {
		switch flagsErr := err.(type) {
		case *flags.Error:
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
			os.Exit(1)
		default:
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
