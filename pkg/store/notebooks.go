package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/notewell/notewell/pkg/core"
)

// GetNotebooks returns all persisted notebooks ordered by name.
func (s *Store) GetNotebooks() ([]core.Notebook, error) {
	rows, err := s.db.Query(`SELECT id, name FROM notebooks ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("failed to query notebooks: %w", err)
	}
	defer rows.Close()

	var notebooks []core.Notebook
	for rows.Next() {
		var nb core.Notebook
		if err := rows.Scan(&nb.ID, &nb.Name); err != nil {
			return nil, fmt.Errorf("failed to scan notebook: %w", err)
		}
		notebooks = append(notebooks, nb)
	}
	return notebooks, rows.Err()
}

// GetNotebookByID returns the notebook with the given id.
func (s *Store) GetNotebookByID(id string) (core.Notebook, error) {
	row := s.db.QueryRow(`SELECT id, name FROM notebooks WHERE id = ?`, id)
	return scanNotebook(row)
}

// GetNotebookByName returns the notebook with the given name, compared
// case-insensitively.
func (s *Store) GetNotebookByName(name string) (core.Notebook, error) {
	row := s.db.QueryRow(`SELECT id, name FROM notebooks WHERE name = ? COLLATE NOCASE`, name)
	return scanNotebook(row)
}

// AddNotebook inserts a notebook and returns its new id.
func (s *Store) AddNotebook(name string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(`INSERT INTO notebooks (id, name, created_at) VALUES (?, ?, ?)`,
		id, name, time.Now().UnixMilli())
	if err != nil {
		return "", fmt.Errorf("failed to insert notebook: %w", err)
	}
	return id, nil
}

// UpdateNotebook persists a notebook's name.
func (s *Store) UpdateNotebook(nb core.Notebook) error {
	res, err := s.db.Exec(`UPDATE notebooks SET name = ? WHERE id = ?`, nb.Name, nb.ID)
	if err != nil {
		return fmt.Errorf("failed to update notebook: %w", err)
	}
	return requireRow(res)
}

// DeleteNotebook removes a notebook. Notes referencing it keep their
// reference; reads resolve a missing notebook to unfiled.
func (s *Store) DeleteNotebook(id string) error {
	res, err := s.db.Exec(`DELETE FROM notebooks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete notebook: %w", err)
	}
	return requireRow(res)
}

func scanNotebook(row *sql.Row) (core.Notebook, error) {
	var nb core.Notebook
	err := row.Scan(&nb.ID, &nb.Name)
	if err == sql.ErrNoRows {
		return core.Notebook{}, core.ErrNotFound
	}
	if err != nil {
		return core.Notebook{}, fmt.Errorf("failed to scan notebook: %w", err)
	}
	return nb, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}
