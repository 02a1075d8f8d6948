package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"topic-communities/internal/models"

	"github.com/lib/pq"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS topics (
	seq            BIGSERIAL,
	id             TEXT PRIMARY KEY,
	name           TEXT,
	tags           TEXT[],
	average_rating DOUBLE PRECISION
);
CREATE TABLE IF NOT EXISTS communities (
	seq           BIGSERIAL,
	id            TEXT PRIMARY KEY,
	topic_id      TEXT NOT NULL,
	name          TEXT,
	description   TEXT,
	rating        DOUBLE PRECISION,
	members_count INTEGER,
	subtopics     TEXT[],
	image_url     TEXT,
	data_ai_hint  TEXT
);
CREATE INDEX IF NOT EXISTS communities_topic_id_idx ON communities (topic_id);`

const (
	queryTopicsByName = `SELECT id, name, tags, average_rating FROM topics WHERE name ILIKE $1 ESCAPE '\' ORDER BY seq`
	queryTopicByID    = `SELECT id, name, tags, average_rating FROM topics WHERE id = $1`
	queryCommunities  = `SELECT id, topic_id, name, description, rating, members_count, subtopics, image_url, data_ai_hint
		FROM communities WHERE topic_id = $1 AND (rating IS NULL OR rating >= $2) ORDER BY seq`

	upsertTopic = `INSERT INTO topics (id, name, tags, average_rating) VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, tags = EXCLUDED.tags, average_rating = EXCLUDED.average_rating`
	upsertCommunity = `INSERT INTO communities (id, topic_id, name, description, rating, members_count, subtopics, image_url, data_ai_hint)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET topic_id = EXCLUDED.topic_id, name = EXCLUDED.name, description = EXCLUDED.description,
			rating = EXCLUDED.rating, members_count = EXCLUDED.members_count, subtopics = EXCLUDED.subtopics,
			image_url = EXCLUDED.image_url, data_ai_hint = EXCLUDED.data_ai_hint`
)

// Postgres reads topics and communities from PostgreSQL.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Migrate creates the tables when they do not exist.
func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, schemaDDL); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

func (p *Postgres) FindTopicsByNameContains(ctx context.Context, query string) ([]models.Topic, error) {
	rows, err := p.db.QueryContext(ctx, queryTopicsByName, "%"+escapeLike(query)+"%")
	if err != nil {
		return nil, fmt.Errorf("query topics: %w", err)
	}
	defer rows.Close()

	var topics []models.Topic
	for rows.Next() {
		t, err := scanTopic(rows)
		if err != nil {
			return nil, err
		}
		topics = append(topics, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate topics: %w", err)
	}
	return topics, nil
}

func (p *Postgres) GetTopic(ctx context.Context, id string) (*models.Topic, error) {
	t, err := scanTopic(p.db.QueryRowContext(ctx, queryTopicByID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (p *Postgres) FindCommunities(ctx context.Context, topicID string, minRating float64) ([]models.Community, error) {
	rows, err := p.db.QueryContext(ctx, queryCommunities, topicID, minRating)
	if err != nil {
		return nil, fmt.Errorf("query communities: %w", err)
	}
	defer rows.Close()

	var out []models.Community
	for rows.Next() {
		var (
			c                       models.Community
			name, desc, image, hint sql.NullString
			rating                  sql.NullFloat64
			members                 sql.NullInt64
			subtopics               pq.StringArray
		)
		if err := rows.Scan(&c.ID, &c.TopicID, &name, &desc, &rating, &members, &subtopics, &image, &hint); err != nil {
			return nil, fmt.Errorf("scan community: %w", err)
		}
		c.Name = name.String
		c.Description = desc.String
		c.ImageURL = image.String
		c.DataAIHint = hint.String
		if rating.Valid {
			c.Rating = models.Float(rating.Float64)
		}
		if members.Valid {
			c.MembersCount = models.Int(int(members.Int64))
		}
		if subtopics != nil {
			c.Subtopics = []string(subtopics)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate communities: %w", err)
	}
	return out, nil
}

// UpsertTopic inserts or replaces a topic. Nil tags are stored as NULL.
func (p *Postgres) UpsertTopic(ctx context.Context, t models.Topic) error {
	var tags interface{}
	if t.Tags != nil {
		tags = pq.StringArray(t.Tags)
	}
	_, err := p.db.ExecContext(ctx, upsertTopic, t.ID, t.Name, tags, nullFloat(t.AverageRating))
	if err != nil {
		return fmt.Errorf("upsert topic %s: %w", t.ID, err)
	}
	return nil
}

func (p *Postgres) UpsertCommunity(ctx context.Context, c models.Community) error {
	var members sql.NullInt64
	if c.MembersCount != nil {
		members = sql.NullInt64{Int64: int64(*c.MembersCount), Valid: true}
	}
	var subtopics interface{}
	if c.Subtopics != nil {
		subtopics = pq.StringArray(c.Subtopics)
	}
	_, err := p.db.ExecContext(ctx, upsertCommunity,
		c.ID, c.TopicID, c.Name, c.Description, nullFloat(c.Rating), members, subtopics,
		nullString(c.ImageURL), nullString(c.DataAIHint),
	)
	if err != nil {
		return fmt.Errorf("upsert community %s: %w", c.ID, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTopic(row rowScanner) (models.Topic, error) {
	var (
		t      models.Topic
		name   sql.NullString
		tags   pq.StringArray
		rating sql.NullFloat64
	)
	if err := row.Scan(&t.ID, &name, &tags, &rating); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return t, err
		}
		return t, fmt.Errorf("scan topic: %w", err)
	}
	t.Name = name.String
	if tags != nil {
		t.Tags = []string(tags)
	}
	if rating.Valid {
		t.AverageRating = models.Float(rating.Float64)
	}
	return t, nil
}

// escapeLike escapes the ILIKE wildcards so the query matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
