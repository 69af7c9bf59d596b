package database

// New opens the store named by opts.URL, running migrations first if requested.
func New(opts *Options) (Database, error) {
	opts.SetDefaults()

	driver, err := opts.Driver()
	if err != nil {
		return nil, err
	}

	if opts.AutoMigrate && driver != DriverMemory {
		if err := Migrate(opts); err != nil {
			return nil, err
		}
	}

	switch driver {
	case DriverPostgres:
		return NewPostgres(opts)
	case DriverSQLite:
		return NewSQLite(opts)
	default:
		return NewMemory(), nil
	}
}
