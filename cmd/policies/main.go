// Command policies menulis (dan opsional menjalankan) SQL row-level security.
//
//	go run ./cmd/policies -out supabase/migrations/policies.sql [-config policies.json] [-apply]
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"schooldesk_backend/internals/configs"
	"schooldesk_backend/internals/policies"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("policies failed")
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("policies", flag.ContinueOnError)
	out := fs.String("out", "supabase/migrations/policies.sql", "output SQL file")
	cfg := fs.String("config", "", "JSON descriptor file (default: built-in descriptors)")
	apply := fs.Bool("apply", false, "execute the SQL against the configured database")
	if err := fs.Parse(args); err != nil {
		return err
	}

	configs.LoadEnv()
	schema := configs.DBSchema

	set := policies.Default(schema)
	if *cfg != "" {
		b, err := os.ReadFile(*cfg)
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		if set, err = policies.Parse(b); err != nil {
			return err
		}
	}

	sql, err := policies.Compile(schema, set)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	if err := os.WriteFile(*out, []byte(sql), 0o644); err != nil {
		return fmt.Errorf("write sql: %w", err)
	}
	log.Info().Str("file", *out).Int("tables", len(set)).Msg("policies written")

	if !*apply {
		return nil
	}
	db, err := configs.OpenDirectDB()
	if err != nil {
		return err
	}
	if err := db.Exec(sql).Error; err != nil {
		return fmt.Errorf("apply policies: %w", err)
	}
	log.Info().Msg("policies applied")
	return nil
}
