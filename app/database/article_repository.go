package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/pmoreau/sportwire/app/articles"
)

// ArticleRepository is the remote-path article store. Facet constraints
// are pushed down as SQL predicates so one round trip returns both the
// requested page and the exact match count.
type ArticleRepository struct {
	db *DB
}

func NewArticleRepository(db *DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

const articleColumns = `id, source_id, source_name, organisation_type, sport, country,
       language, content_type, title, summary, published_at, source_url,
       image_url, topics, official_weight, status`

// SearchArticles implements articles.Store.
func (r *ArticleRepository) SearchArticles(ctx context.Context, args articles.QueryArgs) ([]articles.Article, int, error) {
	query, queryArgs := buildSearchQuery(args)

	rows, err := r.db.QueryContext(ctx, query, queryArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search articles: %w", err)
	}
	defer rows.Close()

	var items []articles.Article
	var total int
	for rows.Next() {
		var item articles.Article
		err := rows.Scan(
			&item.ID, &item.SourceID, &item.SourceName, &item.OrganisationType,
			&item.Sport, &item.Country, &item.Language, &item.ContentType,
			&item.Title, &item.Summary, &item.PublishedAt, &item.SourceURL,
			&item.ImageURL, pq.Array(&item.Topics), &item.OfficialWeight,
			&item.Status, &total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan article row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating article rows: %w", err)
	}

	return items, total, nil
}

// buildSearchQuery translates query args into one SQL statement. The
// window COUNT(*) makes every returned row carry the pre-slice total.
func buildSearchQuery(args articles.QueryArgs) (string, []interface{}) {
	var conditions []string
	var queryArgs []interface{}

	arg := func(value interface{}) string {
		queryArgs = append(queryArgs, value)
		return fmt.Sprintf("$%d", len(queryArgs))
	}

	if len(args.Statuses) > 0 {
		statuses := make([]string, len(args.Statuses))
		for i, s := range args.Statuses {
			statuses[i] = string(s)
		}
		conditions = append(conditions, "status = ANY("+arg(pq.Array(statuses))+")")
	}

	membership := func(column string, values []string) {
		if len(values) > 0 {
			conditions = append(conditions, column+" = ANY("+arg(pq.Array(values))+")")
		}
	}

	membership("sport", args.Sports)
	membership("organisation_type", args.OrganisationTypes)
	membership("country", args.Countries)
	membership("content_type", args.ContentTypes)
	membership("language", args.Languages)

	if len(args.Topics) > 0 {
		conditions = append(conditions, "topics && "+arg(pq.Array(args.Topics)))
	}

	if args.PublishedAfter != nil {
		conditions = append(conditions, "published_at >= "+arg(*args.PublishedAfter))
	}

	if args.Query != "" {
		pattern := "%" + strings.ReplaceAll(args.Query, "%", "") + "%"
		p := arg(pattern)
		conditions = append(conditions, fmt.Sprintf(
			"(title ILIKE %s OR summary ILIKE %s OR source_name ILIKE %s OR sport ILIKE %s)",
			p, p, p, p))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var orderBy string
	switch args.Sort {
	case articles.SortOfficialDesc:
		orderBy = "ORDER BY official_weight DESC, published_at DESC"
	case articles.SortDateAsc:
		orderBy = "ORDER BY published_at ASC"
	default:
		orderBy = "ORDER BY published_at DESC"
	}

	offset := (args.Page - 1) * args.Limit
	limitClause := fmt.Sprintf("LIMIT %s OFFSET %s", arg(args.Limit), arg(offset))

	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total
		FROM articles
		%s
		%s
		%s
	`, articleColumns, where, orderBy, limitClause)

	return query, queryArgs
}

// UpsertArticle inserts or updates an article by id. Used by the seed
// loader, not the query path.
func (r *ArticleRepository) UpsertArticle(ctx context.Context, item articles.Article) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO articles (
			id, source_id, source_name, organisation_type, sport, country,
			language, content_type, title, summary, published_at, source_url,
			image_url, topics, official_weight, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO UPDATE SET
			source_name = EXCLUDED.source_name,
			title = EXCLUDED.title,
			summary = EXCLUDED.summary,
			published_at = EXCLUDED.published_at,
			topics = EXCLUDED.topics,
			official_weight = EXCLUDED.official_weight,
			status = EXCLUDED.status,
			updated_at = NOW()
	`, item.ID, item.SourceID, item.SourceName, item.OrganisationType,
		item.Sport, item.Country, item.Language, item.ContentType,
		item.Title, item.Summary, item.PublishedAt, item.SourceURL,
		item.ImageURL, pq.Array(item.Topics), item.OfficialWeight, item.Status)

	if err != nil {
		return fmt.Errorf("failed to upsert article: %w", err)
	}

	return nil
}

// GetArticleCount returns the number of published articles.
func (r *ArticleRepository) GetArticleCount(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM articles WHERE status = 'published'").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get article count: %w", err)
	}
	return count, nil
}
