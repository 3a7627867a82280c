package history

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema embed.FS

// Deployment is one recorded run.
type Deployment struct {
	ID          int64
	ProjectType string
	URL         string
	SourcePath  string
	CreatedAt   string
}

// Store keeps a local record of successful deployments.
type Store struct {
	db *sql.DB
}

// Open creates the database (and its parent directory) if needed and
// applies the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %v", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	schemaBytes, err := schema.ReadFile("schema.sql")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to read schema file: %v", err)
	}

	if _, err := db.Exec(string(schemaBytes)); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create database schema: %v", err)
	}

	return &Store{db: db}, nil
}

// Record inserts one successful deployment.
func (s *Store) Record(projectType, url, sourcePath string) error {
	_, err := s.db.Exec(
		"INSERT INTO deployments (project_type, url, source_path) VALUES ($1, $2, $3)",
		projectType, url, sourcePath,
	)
	if err != nil {
		return fmt.Errorf("failed to insert deployment: %v", err)
	}

	return nil
}

// List returns recorded deployments, newest first.
func (s *Store) List() ([]Deployment, error) {
	rows, err := s.db.Query("SELECT id, project_type, url, source_path, created_at FROM deployments ORDER BY id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query deployments: %v", err)
	}
	defer rows.Close()

	var deployments []Deployment
	for rows.Next() {
		var d Deployment
		if err := rows.Scan(&d.ID, &d.ProjectType, &d.URL, &d.SourcePath, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan deployment: %v", err)
		}
		deployments = append(deployments, d)
	}

	return deployments, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
