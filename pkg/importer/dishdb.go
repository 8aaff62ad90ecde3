// Package importer builds catalog directories (manifest.yaml + data.gob)
// from external dish sources: a SQLite dish database or a CSV file.
package importer

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/hazyhaar/ementa/pkg/menu"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS dishes (
	seq          INTEGER PRIMARY KEY AUTOINCREMENT,
	id           TEXT NOT NULL UNIQUE,
	name         TEXT NOT NULL,
	description  TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS dish_ingredients (
	dish_id   TEXT NOT NULL REFERENCES dishes(id) ON DELETE CASCADE,
	position  INTEGER NOT NULL,
	name      TEXT NOT NULL,
	PRIMARY KEY (dish_id, position)
);
CREATE TABLE IF NOT EXISTS dish_images (
	dish_id   TEXT NOT NULL REFERENCES dishes(id) ON DELETE CASCADE,
	position  INTEGER NOT NULL,
	ref       TEXT NOT NULL,
	PRIMARY KEY (dish_id, position)
);`

// DishDB is a SQLite dish source. Row order in dishes is the catalog order;
// ingredient and image order is kept through their position column.
type DishDB struct {
	db *sql.DB
}

// OpenDishDB opens (or creates) the SQLite database at path and ensures the
// dish tables exist.
func OpenDishDB(path string) (*DishDB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open dish db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create dish tables: %w", err)
	}
	return &DishDB{db: db}, nil
}

// Close closes the SQLite connection.
func (s *DishDB) Close() error {
	return s.db.Close()
}

// Insert appends a dish. A dish without an id gets a random UUID, which is
// written back into the returned copy.
func (s *DishDB) Insert(ctx context.Context, d menu.Dish) (menu.Dish, error) {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return d, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO dishes (id, name, description) VALUES (?, ?, ?)`,
		d.ID, d.Name, d.Description); err != nil {
		return d, fmt.Errorf("insert dish %s: %w", d.ID, err)
	}
	for i, name := range d.Ingredients {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO dish_ingredients (dish_id, position, name) VALUES (?, ?, ?)`,
			d.ID, i, name); err != nil {
			return d, fmt.Errorf("insert ingredient %d of %s: %w", i, d.ID, err)
		}
	}
	for i, ref := range d.Images {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO dish_images (dish_id, position, ref) VALUES (?, ?, ?)`,
			d.ID, i, ref); err != nil {
			return d, fmt.Errorf("insert image %d of %s: %w", i, d.ID, err)
		}
	}
	return d, tx.Commit()
}

// Dishes reads every dish in insertion order.
func (s *DishDB) Dishes(ctx context.Context) ([]menu.Dish, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, description FROM dishes ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list dishes: %w", err)
	}

	var dishes []menu.Dish
	index := make(map[string]int)
	for rows.Next() {
		var d menu.Dish
		if err := rows.Scan(&d.ID, &d.Name, &d.Description); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan dish: %w", err)
		}
		index[d.ID] = len(dishes)
		dishes = append(dishes, d)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	if err := s.fillList(ctx, `SELECT dish_id, name FROM dish_ingredients ORDER BY dish_id, position`,
		index, func(d *menu.Dish, v string) { d.Ingredients = append(d.Ingredients, v) }, dishes); err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	if err := s.fillList(ctx, `SELECT dish_id, ref FROM dish_images ORDER BY dish_id, position`,
		index, func(d *menu.Dish, v string) { d.Images = append(d.Images, v) }, dishes); err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	return dishes, nil
}

func (s *DishDB) fillList(ctx context.Context, query string, index map[string]int, add func(*menu.Dish, string), dishes []menu.Dish) error {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id, v string
		if err := rows.Scan(&id, &v); err != nil {
			return err
		}
		if i, ok := index[id]; ok {
			add(&dishes[i], v)
		}
	}
	return rows.Err()
}
