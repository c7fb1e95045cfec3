package cfg

type Cfg struct {
	// Database configuration. Leave DBHost empty to run from the local
	// article snapshot instead of postgres.
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Application configuration
	DataFile     string
	WidgetsDir   string
	Port         string
	BaseUrl      string
	APIAccessKey string

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}

// RemoteStoreConfigured reports whether the postgres-backed path should
// be used.
func (c *Cfg) RemoteStoreConfigured() bool {
	return c.DBHost != ""
}
