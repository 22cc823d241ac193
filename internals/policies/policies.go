// Package policies mengompilasi deskriptor row-level security menjadi SQL
// (DROP/ALTER/CREATE POLICY) untuk dijalankan di Postgres.
package policies

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
)

const (
	OpSelect = "SELECT"
	OpInsert = "INSERT"
	OpUpdate = "UPDATE"
	OpDelete = "DELETE"
	OpAll    = "ALL"
)

var validOps = map[string]struct{}{OpSelect: {}, OpInsert: {}, OpUpdate: {}, OpDelete: {}, OpAll: {}}

type Policy struct {
	Name       string `json:"name"`
	Operation  string `json:"operation"`
	Expression string `json:"expression"`
}

// Set: nama tabel -> daftar policy.
type Set map[string][]Policy

var ErrInvalidPolicy = errors.New("invalid policy")

// Validate menolak tabel/nama/ekspresi kosong, operasi tak dikenal,
// dan nama policy ganda dalam satu tabel.
func (s Set) Validate() error {
	var errs []error
	for table, list := range s {
		if strings.TrimSpace(table) == "" {
			errs = append(errs, fmt.Errorf("%w: empty table name", ErrInvalidPolicy))
			continue
		}
		seen := map[string]struct{}{}
		for i, p := range list {
			where := fmt.Sprintf("%s[%d]", table, i)
			if strings.TrimSpace(p.Name) == "" {
				errs = append(errs, fmt.Errorf("%w: %s: empty name", ErrInvalidPolicy, where))
			}
			if strings.TrimSpace(p.Expression) == "" {
				errs = append(errs, fmt.Errorf("%w: %s: empty expression", ErrInvalidPolicy, where))
			}
			if _, ok := validOps[strings.ToUpper(strings.TrimSpace(p.Operation))]; !ok {
				errs = append(errs, fmt.Errorf("%w: %s: unknown operation %q", ErrInvalidPolicy, where, p.Operation))
			}
			if _, dup := seen[p.Name]; dup {
				errs = append(errs, fmt.Errorf("%w: %s: duplicate name %q", ErrInvalidPolicy, where, p.Name))
			}
			seen[p.Name] = struct{}{}
		}
	}
	return errors.Join(errs...)
}

// Parse membaca deskriptor JSON ({"table":[{name,operation,expression}]}).
func Parse(data []byte) (Set, error) {
	var s Set
	if err := sonic.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse policies: %w", err)
	}
	return s, nil
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func qualified(schema, table string) string {
	if schema == "" {
		return quoteIdent(table)
	}
	return quoteIdent(schema) + "." + quoteIdent(table)
}

// Compile menghasilkan SQL deterministik (tabel urut nama, policy sesuai urutan deskriptor).
// USING untuk SELECT/DELETE, WITH CHECK untuk INSERT, keduanya untuk UPDATE/ALL.
func Compile(schema string, set Set) (string, error) {
	if err := set.Validate(); err != nil {
		return "", err
	}
	tables := make([]string, 0, len(set))
	for t := range set {
		tables = append(tables, t)
	}
	sort.Strings(tables)

	var b strings.Builder
	for i, table := range tables {
		if i > 0 {
			b.WriteString("\n")
		}
		target := qualified(schema, table)
		fmt.Fprintf(&b, "-- %s\n", table)
		for _, p := range set[table] {
			fmt.Fprintf(&b, "DROP POLICY IF EXISTS %s ON %s;\n", quoteIdent(p.Name), target)
		}
		fmt.Fprintf(&b, "ALTER TABLE %s ENABLE ROW LEVEL SECURITY;\n", target)
		for _, p := range set[table] {
			op := strings.ToUpper(strings.TrimSpace(p.Operation))
			expr := strings.TrimSpace(p.Expression)
			fmt.Fprintf(&b, "CREATE POLICY %s ON %s FOR %s", quoteIdent(p.Name), target, op)
			switch op {
			case OpSelect, OpDelete:
				fmt.Fprintf(&b, " USING (%s)", expr)
			case OpInsert:
				fmt.Fprintf(&b, " WITH CHECK (%s)", expr)
			default:
				fmt.Fprintf(&b, " USING (%s) WITH CHECK (%s)", expr, expr)
			}
			b.WriteString(";\n")
		}
	}
	return b.String(), nil
}
