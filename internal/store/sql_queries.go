package store

import (
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/sanoneto/registro-horas/models"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var (
	principalColumns = []string{"id", "public_id", "username", "password_hash", "role", "created_at"}
	tokenColumns     = []string{"id", "public_id", "token", "principal_id", "issued_at", "expires_at", "revoked"}
)

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

func buildInsertPrincipalQuery(p models.Principal) (string, []any, error) {
	query, args, err := psql.Insert(models.Principal{}.TableName()).
		Columns("public_id", "username", "password_hash", "role").
		Values(p.PublicID, p.Username, p.PasswordHash, p.Role).
		Suffix(returning(principalColumns)).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildSelectPrincipalQuery(where sq.Eq) (string, []any, error) {
	query, args, err := psql.Select(principalColumns...).
		From(models.Principal{}.TableName()).
		Where(where).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeletePrincipalQuery(publicID uuid.UUID) (string, []any, error) {
	query, args, err := psql.Delete(models.Principal{}.TableName()).
		Where(sq.Eq{"public_id": publicID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildInsertTokenQuery resolves the owner by username inside the INSERT so
// that a missing principal yields zero rows instead of a dangling reference.
func buildInsertTokenQuery(t models.Token, username string) (string, []any, error) {
	owner := sq.Select().
		Column("?", t.PublicID).
		Column("?", t.Token).
		Column("id").
		Column("?", t.IssuedAt).
		Column("?", t.ExpiresAt).
		Column("FALSE").
		From(models.Principal{}.TableName()).
		Where(sq.Eq{"username": username})

	query, args, err := psql.Insert(models.Token{}.TableName()).
		Columns("public_id", "token", "principal_id", "issued_at", "expires_at", "revoked").
		Select(owner).
		Suffix(returning(tokenColumns)).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildSelectTokenQuery(token string) (string, []any, error) {
	query, args, err := psql.Select(tokenColumns...).
		From(models.Token{}.TableName()).
		Where(sq.Eq{"token": token}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildSelectLatestActiveTokenQuery(principalID int64, now time.Time) (string, []any, error) {
	query, args, err := psql.Select(tokenColumns...).
		From(models.Token{}.TableName()).
		Where(sq.Eq{"principal_id": principalID, "revoked": false}).
		Where(sq.Gt{"expires_at": now}).
		OrderBy("issued_at DESC", "id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildRevokeTokenQuery(token string) (string, []any, error) {
	query, args, err := psql.Update(models.Token{}.TableName()).
		Set("revoked", true).
		Where(sq.Eq{"token": token, "revoked": false}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildRevokeAllTokensQuery(principalID int64) (string, []any, error) {
	query, args, err := psql.Update(models.Token{}.TableName()).
		Set("revoked", true).
		Where(sq.Eq{"principal_id": principalID, "revoked": false}).
		Suffix("RETURNING token").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeleteExpiredTokensQuery(before time.Time) (string, []any, error) {
	query, args, err := psql.Delete(models.Token{}.TableName()).
		Where(sq.Lt{"expires_at": before}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
