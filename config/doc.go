// Package config loads the service configuration with viper.
//
// Values come from config.yaml (or the file passed with --conf) and may be
// overridden from the environment: nested keys map to upper-case names with
// dots replaced by underscores (server.port -> SERVER_PORT), and the flat
// PORT, NODE_ENV and DATABASE_URL variables are honoured as well.
//
//	cfg, err := config.LoadConfig("config.yaml")
//	if err != nil {
//	    return err // wraps ErrInvalidConfig when validation fails
//	}
//
// The loaded configuration is validated before it is returned; a bad port,
// run mode or database driver aborts start-up.
package config
