package scoremigrations

import "github.com/uptrace/bun/migrate"

var Migrations = migrate.NewMigrations()

func init() {
	// Go migrations register themselves from their own files; this also picks up
	// any .sql migrations placed next to them.
	if err := Migrations.DiscoverCaller(); err != nil {
		panic(err)
	}
}
