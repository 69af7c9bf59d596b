package api

import (
	"github.com/voidshard/etlmon/internal/core"
	"github.com/voidshard/etlmon/pkg/database"
	"github.com/voidshard/etlmon/pkg/events"
)

// New connects to the store & event transport and returns the API.
func New(dbOpts *database.Options, evOpts *events.Options, opts *Options) (API, error) {
	if opts == nil {
		opts = OptionsDefault()
	}

	db, err := database.New(dbOpts)
	if err != nil {
		return nil, err
	}

	pub, err := events.New(evOpts)
	if err != nil {
		db.Close()
		return nil, err
	}

	return core.NewService(db, pub, opts.Logger), nil
}
