package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fmma-backend/internal/domain/match"
	qb "github.com/riskibarqy/fmma-backend/internal/platform/querybuilder"
)

// MatchRepository stores each match as one JSONB document plus a version
// column used for compare-and-swap saves.
type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		item, err := matchFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match by id query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match by id: %w", err)
	}

	item, err := matchFromRow(row)
	if err != nil {
		return match.Match{}, false, err
	}
	return item, true, nil
}

func (r *MatchRepository) Create(ctx context.Context, item match.Match) error {
	if item.Version == 0 {
		item.Version = 1
	}
	payload, err := encodeMatchDocument(item)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertModel("matches", matchInsertModel{
		PublicID:  item.ID,
		Status:    string(item.Status),
		Version:   item.Version,
		Document:  payload,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert match query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert match: public id %s already exists: %w", item.ID, err)
		}
		return fmt.Errorf("insert match: %w", err)
	}
	return nil
}

// Save writes the whole document when the stored version still equals
// item.Version and returns the incremented version.
func (r *MatchRepository) Save(ctx context.Context, item match.Match) (int64, error) {
	payload, err := encodeMatchDocument(item)
	if err != nil {
		return 0, err
	}

	query, args, err := qb.Update("matches").
		Set("document", payload).
		Set("status", string(item.Status)).
		Set("updated_at", item.UpdatedAt).
		SetExpr("version", "version + 1").
		Where(
			qb.Eq("public_id", item.ID),
			qb.Eq("version", item.Version),
			qb.IsNull("deleted_at"),
		).
		Suffix("RETURNING version").
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build save match query: %w", err)
	}

	var version int64
	if err := r.db.GetContext(ctx, &version, query, args...); err != nil {
		if isNotFound(err) {
			return 0, fmt.Errorf("%w: match=%s version=%d", match.ErrVersionConflict, item.ID, item.Version)
		}
		return 0, fmt.Errorf("save match: %w", err)
	}
	return version, nil
}

func (r *MatchRepository) Delete(ctx context.Context, matchID string) (bool, error) {
	query, args, err := qb.Update("matches").
		Set("deleted_at", time.Now().UTC()).
		SetExpr("version", "version + 1").
		Where(
			qb.Eq("public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete match query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete match: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete match rows affected: %w", err)
	}
	return affected > 0, nil
}

func encodeMatchDocument(item match.Match) (string, error) {
	payload, err := sonic.MarshalString(match.ToDocument(item))
	if err != nil {
		return "", fmt.Errorf("encode match document: %w", err)
	}
	return payload, nil
}

// matchFromRow trusts the columns over the document for identity and version.
func matchFromRow(row matchTableModel) (match.Match, error) {
	var doc match.Document
	if err := sonic.Unmarshal(row.Document, &doc); err != nil {
		return match.Match{}, fmt.Errorf("decode match document %s: %w", row.PublicID, err)
	}

	item, err := match.FromDocument(doc)
	if err != nil {
		return match.Match{}, fmt.Errorf("decode match document %s: %w", row.PublicID, err)
	}
	item.ID = row.PublicID
	item.Status = match.Status(row.Status)
	item.Version = row.Version
	item.CreatedAt = row.CreatedAt
	item.UpdatedAt = row.UpdatedAt
	return item, nil
}
