package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"upahan/internal/domain"
)

// Store serves the generic record-store port over MySQL: one table per
// collection, each row holding the raw JSON document. The analytics engine
// never sees SQL; it reads whole collections and decodes documents itself.
type Store struct{ db *sql.DB }

func New(db *sql.DB) *Store { return &Store{db: db} }

// tableFor whitelists collections; anything else is ErrNoCollection so
// optional collections degrade to empty lists upstream.
var tableFor = map[string]string{
	domain.ColBookings:       "bookings",
	domain.ColListings:       "published_listings",
	domain.ColUsers:          "users",
	domain.ColApplications:   "owner_applications",
	domain.ColInquiries:      "listing_inquiries",
	domain.ColTenantProfiles: "tenant_profiles",
}

func (s *Store) List(ctx context.Context, collection string) ([]map[string]any, error) {
	table, ok := tableFor[collection]
	if !ok {
		return nil, fmt.Errorf("%s: %w", collection, domain.ErrNoCollection)
	}
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(listDocsSQL, table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []map[string]any
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		var doc map[string]any
		if err := json.Unmarshal(raw, &doc); err != nil {
			// One corrupt row should not sink the whole collection.
			log.Warn().Err(err).Str("collection", collection).Str("id", id).Msg("skipping undecodable document")
			continue
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, collection, id string) (map[string]any, error) {
	table, ok := tableFor[collection]
	if !ok {
		return nil, fmt.Errorf("%s: %w", collection, domain.ErrNoCollection)
	}
	var raw []byte
	err := s.db.QueryRowContext(ctx, fmt.Sprintf(getDocSQL, table), id).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", collection, id, err)
	}
	return doc, nil
}

func (s *Store) Upsert(ctx context.Context, collection, id string, doc map[string]any) error {
	table, ok := tableFor[collection]
	if !ok {
		return fmt.Errorf("%s: %w", collection, domain.ErrNoCollection)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", collection, id, err)
	}
	_, err = s.db.ExecContext(ctx, fmt.Sprintf(upsertDocSQL, table), id, string(raw))
	return err
}
