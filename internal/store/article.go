// Copyright (c) 2026 Newsdesk Media Lab <dev@newsdesk.press>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"newsdesk/internal/models"
)

const (
	// DefaultPageSize is the article list page size used by the panel.
	DefaultPageSize = 10

	// maxPageSize caps the limit a client may request.
	maxPageSize = 100
)

// Filter narrows an article list query. Zero values mean "not filtered".
type Filter struct {
	Category     string     // exact category name match
	SearchQuery  string     // case-insensitive substring on title and excerpt
	FeaturedOnly bool       // only articles with is_featured
	StartDate    *time.Time // publish_date >= StartDate
	EndDate      *time.Time // publish_date <= EndDate
	Page         int        // 1-based page number
	Limit        int        // page size
}

// normalize clamps pagination values to sane bounds.
func (f *Filter) normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > maxPageSize {
		f.Limit = maxPageSize
	}
}

// ArticleStore handles all article-related database operations.
type ArticleStore struct {
	db *sql.DB
}

// NewArticleStore creates a new ArticleStore with the given database connection.
func NewArticleStore(db *sql.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

const articleColumns = `id, title, content, excerpt, category, featured_image,
	thumbnail_image, is_featured, publish_date, views, author_name,
	author_email, created_at, updated_at`

// scanArticle scans a row into an Article struct.
func scanArticle(scanner interface{ Scan(...any) error }) (*models.Article, error) {
	var a models.Article
	err := scanner.Scan(
		&a.ID, &a.Title, &a.Content, &a.Excerpt, &a.Category,
		&a.FeaturedImage, &a.ThumbnailImage, &a.IsFeatured,
		&a.PublishDate, &a.Views, &a.Author.Name, &a.Author.Email,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// whereClause builds the SQL condition and argument list for a filter.
func (f *Filter) whereClause() (string, []any) {
	var conds []string
	var args []any

	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.SearchQuery != "" {
		args = append(args, "%"+escapeLike(f.SearchQuery)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR excerpt ILIKE $%d)", n, n))
	}
	if f.FeaturedOnly {
		conds = append(conds, "is_featured")
	}
	if f.StartDate != nil {
		args = append(args, *f.StartDate)
		conds = append(conds, fmt.Sprintf("publish_date >= $%d", len(args)))
	}
	if f.EndDate != nil {
		args = append(args, *f.EndDate)
		conds = append(conds, fmt.Sprintf("publish_date <= $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// escapeLike escapes LIKE metacharacters so user input matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// List returns one page of articles matching the filter, newest publish
// date first, along with the total match count for pagination.
func (s *ArticleStore) List(f Filter) ([]models.Article, int, error) {
	f.normalize()
	where, args := f.whereClause()

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM articles`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count articles: %w", err)
	}

	query := `SELECT ` + articleColumns + ` FROM articles` + where +
		fmt.Sprintf(" ORDER BY publish_date DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, f.Limit, (f.Page-1)*f.Limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	var items []models.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan article: %w", err)
		}
		items = append(items, *a)
	}
	return items, total, rows.Err()
}

// FindByID retrieves an article by its UUID. Returns nil if not found.
func (s *ArticleStore) FindByID(id uuid.UUID) (*models.Article, error) {
	row := s.db.QueryRow(`SELECT `+articleColumns+` FROM articles WHERE id = $1`, id)
	a, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find article by id: %w", err)
	}
	return a, nil
}

// Create inserts a new article and returns it with generated fields filled
// in. A zero PublishDate defaults to now.
func (s *ArticleStore) Create(a *models.Article) (*models.Article, error) {
	if a.PublishDate.IsZero() {
		a.PublishDate = time.Now()
	}

	row := s.db.QueryRow(`
		INSERT INTO articles (title, content, excerpt, category, featured_image,
		                      thumbnail_image, is_featured, publish_date,
		                      author_name, author_email)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+articleColumns,
		a.Title, a.Content, a.Excerpt, a.Category, a.FeaturedImage,
		a.ThumbnailImage, a.IsFeatured, a.PublishDate,
		a.Author.Name, a.Author.Email,
	)
	created, err := scanArticle(row)
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	return created, nil
}

// Update overwrites the full article record and returns the stored result.
// Returns nil if the id doesn't resolve. This is deliberately a whole-record
// write, not a field-level patch: concurrent editors are last-writer-wins,
// matching the panel's toggle-by-resubmission behavior.
func (s *ArticleStore) Update(a *models.Article) (*models.Article, error) {
	row := s.db.QueryRow(`
		UPDATE articles SET
			title = $1, content = $2, excerpt = $3, category = $4,
			featured_image = $5, thumbnail_image = $6, is_featured = $7,
			publish_date = $8, author_name = $9, author_email = $10,
			updated_at = NOW()
		WHERE id = $11
		RETURNING `+articleColumns,
		a.Title, a.Content, a.Excerpt, a.Category, a.FeaturedImage,
		a.ThumbnailImage, a.IsFeatured, a.PublishDate,
		a.Author.Name, a.Author.Email, a.ID,
	)
	updated, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}
	return updated, nil
}

// Delete removes an article and returns the deleted row so the caller can
// clean up its media. Returns nil if the id doesn't resolve.
func (s *ArticleStore) Delete(id uuid.UUID) (*models.Article, error) {
	row := s.db.QueryRow(`DELETE FROM articles WHERE id = $1 RETURNING `+articleColumns, id)
	a, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete article: %w", err)
	}
	return a, nil
}

// IncrementViews bumps the read counter for an article. Called from the
// public read path, never from the admin panel.
func (s *ArticleStore) IncrementViews(id uuid.UUID) (bool, error) {
	res, err := s.db.Exec(`UPDATE articles SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("increment views: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("increment views rows: %w", err)
	}
	return n > 0, nil
}
