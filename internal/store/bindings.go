package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/raphi011/hookr/internal/trigger"
)

// BindingExists reports whether any hook is bound to point in repo.
func (s *Store) BindingExists(ctx context.Context, repo string, point trigger.Point) (bool, error) {
	return s.exists(ctx, "binding exists",
		`SELECT EXISTS(SELECT 1 FROM repo_hooks WHERE repo = ? AND type = ?)`,
		repo, point.String())
}

// BindingMatches reports whether the hook called name is bound to point in
// repo.
func (s *Store) BindingMatches(ctx context.Context, repo string, point trigger.Point, name string) (bool, error) {
	return s.exists(ctx, "binding matches",
		`SELECT EXISTS(SELECT 1 FROM repo_hooks WHERE repo = ? AND type = ? AND name = ?)`,
		repo, point.String(), name)
}

// AddBinding binds name to point in repo. The hook must be registered and
// the binding must not exist yet.
func (s *Store) AddBinding(ctx context.Context, name, repo string, point trigger.Point) error {
	if !point.Valid() {
		return wrap("add binding", fmt.Errorf("invalid trigger point %v", point))
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO repo_hooks (name, repo, type) VALUES (?, ?, ?)`,
		name, repo, point.String())
	return wrap("add binding", err)
}

// RemoveBinding unbinds name from point in repo and reports whether a
// binding was removed.
func (s *Store) RemoveBinding(ctx context.Context, name, repo string, point trigger.Point) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM repo_hooks WHERE name = ? AND repo = ? AND type = ?`,
		name, repo, point.String())
	if err != nil {
		return false, wrap("remove binding", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, wrap("remove binding", err)
	}
	return n > 0, nil
}

// Bindings returns the names bound to point in repo, in the order they were
// applied.
func (s *Store) Bindings(ctx context.Context, repo string, point trigger.Point) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM repo_hooks WHERE repo = ? AND type = ? ORDER BY id`,
		repo, point.String())
	if err != nil {
		return nil, wrap("bindings", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, wrap("bindings", err)
		}
		names = append(names, name)
	}
	return names, wrap("bindings", rows.Err())
}

// BindingsForHook returns every binding of name, in the order they were
// applied.
func (s *Store) BindingsForHook(ctx context.Context, name string) ([]Binding, error) {
	return s.queryBindings(ctx, "bindings for hook",
		`SELECT name, repo, type FROM repo_hooks WHERE name = ? ORDER BY id`, name)
}

// AllBindings returns every binding grouped by repository and trigger point.
func (s *Store) AllBindings(ctx context.Context) ([]Binding, error) {
	return s.queryBindings(ctx, "all bindings",
		`SELECT name, repo, type FROM repo_hooks ORDER BY repo, type, id`)
}

func (s *Store) queryBindings(ctx context.Context, op, query string, args ...any) ([]Binding, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	var out []Binding
	for rows.Next() {
		b, err := scanBinding(rows)
		if err != nil {
			return nil, wrap(op, err)
		}
		out = append(out, b)
	}
	return out, wrap(op, rows.Err())
}

func scanBinding(rows *sql.Rows) (Binding, error) {
	var (
		b     Binding
		point string
	)
	if err := rows.Scan(&b.Name, &b.Repo, &point); err != nil {
		return Binding{}, err
	}
	p, err := trigger.Parse(point)
	if err != nil {
		return Binding{}, err
	}
	b.Point = p
	return b, nil
}
