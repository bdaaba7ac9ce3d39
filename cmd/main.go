package main

import (
	"fmt"
	"os"

	"github.com/ncobase/example-api/cmd/commands"

	_ "github.com/ncobase/example-api/data/mysql"
	_ "github.com/ncobase/example-api/data/postgres"
	_ "github.com/ncobase/example-api/data/redis"
	_ "github.com/ncobase/example-api/data/sqlite"
)

func main() {
	rootCmd := commands.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
