package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/oskar-del/newbuild-homes-costa-blanca-sub013/internal/domain"
)

func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
func valInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertProperties(ctx context.Context, ps []domain.Property) error {
	if len(ps) == 0 {
		return nil
	}
	values := make([]string, 0, len(ps))
	args := make([]any, 0, len(ps)*18) // 18 params per row
	for _, p := range ps {
		imgs, _ := json.Marshal(p.Images)
		values = append(values, "(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)")
		args = append(args,
			p.Source,
			p.ID,
			p.Slug,
			p.Title,
			valF64(p.Price),
			valInt(p.Bedrooms),
			valInt(p.Bathrooms),
			valF64(p.Size),
			p.Description,
			string(imgs),
			p.Town,
			p.Province,
			p.Developer,
			p.DeveloperSlug,
			p.DevelopmentName,
			p.DevelopmentSlug,
			p.PropertyType,
			p.Status,
		)
	}
	sqlStr := insertPropertiesPrefix + strings.Join(values, ",") + insertPropertiesOnDup
	_, err := r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *Repo) LogFeedMiss(ctx context.Context, feed string, status int, reason string) error {
	_, err := r.db.ExecContext(ctx, insertFeedMissSQL, feed, status, reason)
	return err
}

func (r *Repo) ListProperties(ctx context.Context) ([]domain.Property, error) {
	rows, err := r.db.QueryContext(ctx, listPropertiesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Property{}
	for rows.Next() {
		var p domain.Property
		var (
			price, size         sql.NullFloat64
			bedrooms, bathrooms sql.NullInt64
			imagesJSON          []byte
		)
		if err := rows.Scan(
			&p.Source,
			&p.ID,
			&p.Slug,
			&p.Title,
			&price,
			&bedrooms,
			&bathrooms,
			&size,
			&p.Description,
			&imagesJSON,
			&p.Town,
			&p.Province,
			&p.Developer,
			&p.DeveloperSlug,
			&p.DevelopmentName,
			&p.DevelopmentSlug,
			&p.PropertyType,
			&p.Status,
		); err != nil {
			return nil, err
		}
		if price.Valid {
			f := price.Float64
			p.Price = &f
		}
		if size.Valid {
			f := size.Float64
			p.Size = &f
		}
		if bedrooms.Valid {
			n := int(bedrooms.Int64)
			p.Bedrooms = &n
		}
		if bathrooms.Valid {
			n := int(bathrooms.Int64)
			p.Bathrooms = &n
		}
		_ = json.Unmarshal(imagesJSON, &p.Images)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
