package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sanoneto/registro-horas/internal/logger"
	"github.com/sanoneto/registro-horas/models"
)

type tokenRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTokenRepository constructs a PostgreSQL-backed [TokenRepository].
func NewTokenRepository(db *DB, logger *logger.Logger) TokenRepository {
	logger.Debug().Msg("creating token repository")
	return &tokenRepository{
		db:     db,
		logger: logger,
	}
}

func (r *tokenRepository) SaveToken(ctx context.Context, t models.Token, username string) (models.Token, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertTokenQuery(t, username)
	if err != nil {
		return models.Token{}, err
	}

	saved, err := scanToken(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Token{}, ErrUnknownPrincipal
	}
	if err != nil {
		log.Err(err).Str("func", "*tokenRepository.SaveToken").Msg("error inserting token")
		return models.Token{}, r.db.wrapError(err)
	}

	return saved, nil
}

func (r *tokenRepository) FindByTokenString(ctx context.Context, token string) (models.Token, error) {
	query, args, err := buildSelectTokenQuery(token)
	if err != nil {
		return models.Token{}, err
	}

	return r.findOne(ctx, "*tokenRepository.FindByTokenString", query, args)
}

func (r *tokenRepository) FindLatestActiveForPrincipal(ctx context.Context, principalID int64, now time.Time) (models.Token, error) {
	query, args, err := buildSelectLatestActiveTokenQuery(principalID, now)
	if err != nil {
		return models.Token{}, err
	}

	return r.findOne(ctx, "*tokenRepository.FindLatestActiveForPrincipal", query, args)
}

func (r *tokenRepository) findOne(ctx context.Context, funcName, query string, args []any) (models.Token, error) {
	found, err := scanToken(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Token{}, ErrTokenNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Msg("error selecting token")
		return models.Token{}, r.db.wrapError(err)
	}

	return found, nil
}

func (r *tokenRepository) Revoke(ctx context.Context, token string) error {
	query, args, err := buildRevokeTokenQuery(token)
	if err != nil {
		return err
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*tokenRepository.Revoke").Msg("error revoking token")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.wrapError(err))
	}

	return nil
}

func (r *tokenRepository) RevokeAllForPrincipal(ctx context.Context, principalID int64) ([]string, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildRevokeAllTokensQuery(principalID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*tokenRepository.RevokeAllForPrincipal").Msg("error revoking tokens")
		return nil, fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.wrapError(err))
	}
	defer rows.Close()

	revoked := make([]string, 0)
	for rows.Next() {
		var token string
		if err = rows.Scan(&token); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		revoked = append(revoked, token)
	}
	if err = rows.Err(); err != nil {
		return nil, r.db.wrapError(err)
	}

	log.Debug().Int64("principal_id", principalID).Int("revoked", len(revoked)).Msg("revoked tokens of principal")
	return revoked, nil
}

func (r *tokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	query, args, err := buildDeleteExpiredTokensQuery(before)
	if err != nil {
		return 0, err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*tokenRepository.DeleteExpired").Msg("error deleting expired tokens")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.wrapError(err))
	}

	return result.RowsAffected()
}

func scanToken(row *sql.Row) (models.Token, error) {
	var t models.Token
	err := row.Scan(&t.ID, &t.PublicID, &t.Token, &t.PrincipalID, &t.IssuedAt, &t.ExpiresAt, &t.Revoked)
	return t, err
}
