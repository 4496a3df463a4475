package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Zachkp/gamedev-portfolio/internal/catalog"
)

const projectColumns = `slug, title, tagline, summary, description, genre, engine, role,
	platforms, tags, dev_time, team_size, year, trailer_url, starred,
	media, awards, team, links, views`

// ProjectStat is a project's view count for the admin dashboard.
type ProjectStat struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Starred bool   `json:"starred"`
	Views   int64  `json:"views"`
}

// SeedProjects makes the projects table match projects, in order. View
// counts of projects that stay are kept.
func (s *Store) SeedProjects(ctx context.Context, projects []catalog.Project) error {
	if err := checkCtx(ctx, s); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := toMillis(time.Now())
	slugs := make([]any, 0, len(projects))
	for i, p := range projects {
		if strings.TrimSpace(p.Slug) == "" {
			return fmt.Errorf("seed project %d: slug is required", i)
		}
		blobs, err := encodeBlobs(p)
		if err != nil {
			return fmt.Errorf("seed project %s: %w", p.Slug, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO projects (
				slug, position, title, tagline, summary, description, genre, engine, role,
				platforms, tags, dev_time, team_size, year, trailer_url, starred,
				media, awards, team, links, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(slug) DO UPDATE SET
				position = excluded.position,
				title = excluded.title,
				tagline = excluded.tagline,
				summary = excluded.summary,
				description = excluded.description,
				genre = excluded.genre,
				engine = excluded.engine,
				role = excluded.role,
				platforms = excluded.platforms,
				tags = excluded.tags,
				dev_time = excluded.dev_time,
				team_size = excluded.team_size,
				year = excluded.year,
				trailer_url = excluded.trailer_url,
				starred = excluded.starred,
				media = excluded.media,
				awards = excluded.awards,
				team = excluded.team,
				links = excluded.links,
				updated_at = excluded.updated_at`,
			p.Slug, i, p.Title, p.Tagline, p.Summary, p.Description, p.Genre, p.Engine, p.Role,
			blobs[0], blobs[1], p.DevTime, p.TeamSize, p.Year, p.TrailerURL, p.Starred,
			blobs[2], blobs[3], blobs[4], blobs[5], now,
		)
		if err != nil {
			return fmt.Errorf("upsert project %s: %w", p.Slug, err)
		}
		slugs = append(slugs, p.Slug)
	}

	deleteSQL := `DELETE FROM projects`
	if len(slugs) > 0 {
		deleteSQL += ` WHERE slug NOT IN (?` + strings.Repeat(", ?", len(slugs)-1) + `)`
	}
	if _, err := tx.ExecContext(ctx, deleteSQL, slugs...); err != nil {
		return fmt.Errorf("prune projects: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}

// ListProjects returns every project in catalog order.
func (s *Store) ListProjects(ctx context.Context) ([]catalog.Project, error) {
	if err := checkCtx(ctx, s); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY position, slug`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []catalog.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// GetProject returns one project by slug.
func (s *Store) GetProject(ctx context.Context, slug string) (catalog.Project, error) {
	if err := checkCtx(ctx, s); err != nil {
		return catalog.Project{}, err
	}
	row := s.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE slug = ?`, slug)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Project{}, ErrNotFound
	}
	return p, err
}

// RecordProjectView increments the project's view counter.
func (s *Store) RecordProjectView(ctx context.Context, slug string) error {
	if err := checkCtx(ctx, s); err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx, `UPDATE projects SET views = views + 1 WHERE slug = ?`, slug)
	if err != nil {
		return fmt.Errorf("record project view: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("record project view: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// TopProjects returns the most viewed projects.
func (s *Store) TopProjects(ctx context.Context, limit int) ([]ProjectStat, error) {
	if err := checkCtx(ctx, s); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT slug, title, starred, views
		FROM projects
		ORDER BY views DESC, position
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("top projects: %w", err)
	}
	defer rows.Close()

	var stats []ProjectStat
	for rows.Next() {
		var stat ProjectStat
		if err := rows.Scan(&stat.Slug, &stat.Title, &stat.Starred, &stat.Views); err != nil {
			return nil, fmt.Errorf("scan project stat: %w", err)
		}
		stats = append(stats, stat)
	}
	return stats, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(row scanner) (catalog.Project, error) {
	var (
		p                                           catalog.Project
		platforms, tags, media, awards, team, links string
	)
	err := row.Scan(
		&p.Slug, &p.Title, &p.Tagline, &p.Summary, &p.Description, &p.Genre, &p.Engine, &p.Role,
		&platforms, &tags, &p.DevTime, &p.TeamSize, &p.Year, &p.TrailerURL, &p.Starred,
		&media, &awards, &team, &links, &p.Views,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return catalog.Project{}, err
		}
		return catalog.Project{}, fmt.Errorf("scan project: %w", err)
	}
	decode := []struct {
		raw    string
		target any
	}{
		{platforms, &p.Platforms},
		{tags, &p.Tags},
		{media, &p.Media},
		{awards, &p.Awards},
		{team, &p.Team},
		{links, &p.Links},
	}
	for _, d := range decode {
		if err := json.Unmarshal([]byte(d.raw), d.target); err != nil {
			return catalog.Project{}, fmt.Errorf("decode project %s: %w", p.Slug, err)
		}
	}
	return p, nil
}

// encodeBlobs returns platforms, tags, media, awards, team and links as JSON.
func encodeBlobs(p catalog.Project) ([6]string, error) {
	var out [6]string
	values := []any{p.Platforms, p.Tags, p.Media, p.Awards, p.Team, p.Links}
	for i, v := range values {
		b, err := json.Marshal(v)
		if err != nil {
			return out, fmt.Errorf("encode: %w", err)
		}
		if string(b) == "null" {
			b = []byte("[]")
		}
		out[i] = string(b)
	}
	return out, nil
}
