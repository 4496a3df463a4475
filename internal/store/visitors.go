package store

import (
	"context"
	"fmt"
	"time"
)

// VisitorMetric is one tracked page view. The IP is stored hashed.
type VisitorMetric struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
	Country   string    `json:"country,omitempty"`
}

// AdminStats summarises traffic for the admin dashboard.
type AdminStats struct {
	TotalVisitors    int64           `json:"total_visitors"`
	UniqueVisitors   int64           `json:"unique_visitors"`
	TotalProjects    int64           `json:"total_projects"`
	TotalViews       int64           `json:"total_views"`
	TopProjects      []ProjectStat   `json:"top_projects"`
	RecentVisitors   []VisitorMetric `json:"recent_visitors"`
	VisitorsToday    int64           `json:"visitors_today"`
	VisitorsThisWeek int64           `json:"visitors_this_week"`
}

// RecordVisit stores a page view.
func (s *Store) RecordVisit(ctx context.Context, v VisitorMetric) error {
	if err := checkCtx(ctx, s); err != nil {
		return err
	}
	if v.HashedIP == "" {
		return fmt.Errorf("hashed ip is required")
	}
	if v.Timestamp.IsZero() {
		v.Timestamp = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp, country)
		VALUES (?, ?, ?, ?, ?)`,
		v.HashedIP, v.UserAgent, v.Path, toMillis(v.Timestamp), v.Country)
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// CleanupVisitors deletes visits older than before and returns how many
// were removed.
func (s *Store) CleanupVisitors(ctx context.Context, before time.Time) (int64, error) {
	if err := checkCtx(ctx, s); err != nil {
		return 0, err
	}
	result, err := s.db.ExecContext(ctx, `DELETE FROM visitors WHERE timestamp < ?`, toMillis(before))
	if err != nil {
		return 0, fmt.Errorf("cleanup visitors: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("cleanup visitors: %w", err)
	}
	return n, nil
}

// RecentVisitors returns the latest visits, newest first.
func (s *Store) RecentVisitors(ctx context.Context, limit int) ([]VisitorMetric, error) {
	if err := checkCtx(ctx, s); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, user_agent, path, timestamp, country
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent visitors: %w", err)
	}
	defer rows.Close()

	var visitors []VisitorMetric
	for rows.Next() {
		var (
			v  VisitorMetric
			ts int64
		)
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &ts, &v.Country); err != nil {
			return nil, fmt.Errorf("scan visitor: %w", err)
		}
		v.Timestamp = fromMillis(ts)
		visitors = append(visitors, v)
	}
	return visitors, rows.Err()
}

// AdminStats collects dashboard statistics relative to now.
func (s *Store) AdminStats(ctx context.Context, now time.Time) (*AdminStats, error) {
	if err := checkCtx(ctx, s); err != nil {
		return nil, err
	}
	now = now.UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekAgo := now.Add(-7 * 24 * time.Hour)

	stats := &AdminStats{}
	counts := []struct {
		query  string
		args   []any
		target *int64
	}{
		{`SELECT COUNT(*) FROM visitors`, nil, &stats.TotalVisitors},
		{`SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil, &stats.UniqueVisitors},
		{`SELECT COUNT(*) FROM projects`, nil, &stats.TotalProjects},
		{`SELECT COALESCE(SUM(views), 0) FROM projects`, nil, &stats.TotalViews},
		{`SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{toMillis(startOfDay)}, &stats.VisitorsToday},
		{`SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{toMillis(weekAgo)}, &stats.VisitorsThisWeek},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.target); err != nil {
			return nil, fmt.Errorf("admin stats: %w", err)
		}
	}

	var err error
	if stats.TopProjects, err = s.TopProjects(ctx, 10); err != nil {
		return nil, err
	}
	if stats.RecentVisitors, err = s.RecentVisitors(ctx, 50); err != nil {
		return nil, err
	}
	return stats, nil
}
