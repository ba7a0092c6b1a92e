package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Profile names a player implementation under evaluation, e.g. "csp" or
// "csp-v2". Results are grouped by profile.
type Profile struct {
	ProfileId int    `json:"profile_id"`
	Name      string `json:"name"`
}

func (q Queries) CreateProfile(
	ctx context.Context, name string,
) (*Profile, error) {
	var profileId int
	if err := q.db.QueryRow(ctx, `
		INSERT INTO profile (name)
		VALUES (@name)
		RETURNING profile_id`,
		pgx.NamedArgs{"name": name},
	).Scan(&profileId); err != nil {
		return nil, err
	}
	return &Profile{ProfileId: profileId, Name: name}, nil
}

func (q Queries) GetProfile(
	ctx context.Context, name string,
) (*Profile, error) {
	rows, err := q.db.Query(ctx, `
		SELECT profile_id, name
		FROM profile
		WHERE name = $1;`,
		name)
	if err != nil {
		return nil, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Profile])
}

// EnsureProfile creates a profile, falling back to the existing row when
// the name is already taken.
func (q Queries) EnsureProfile(
	ctx context.Context, name string,
) (*Profile, error) {
	profile, err := q.CreateProfile(ctx, name)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) &&
		pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		return q.GetProfile(ctx, name)
	}
	return profile, err
}
