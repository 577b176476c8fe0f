package store

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/sanoneto/registro-horas/internal/logger"
	"github.com/sanoneto/registro-horas/models"
)

// principalRepository is the PostgreSQL-backed implementation of
// [PrincipalRepository]. It handles account creation, lookup and deletion
// against the "principals" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type principalRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewPrincipalRepository constructs a [PrincipalRepository] backed by the
// provided database connection and logger.
func NewPrincipalRepository(db *DB, logger *logger.Logger) PrincipalRepository {
	logger.Debug().Msg("creating principal repository")
	return &principalRepository{
		db:     db,
		logger: logger,
	}
}

// CreatePrincipal persists a new principal and returns the fully populated
// [models.Principal] with server-assigned fields (ID, CreatedAt).
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrUsernameTaken].
//   - Any other driver-level error → wrapped by [DB.wrapError].
func (r *principalRepository) CreatePrincipal(ctx context.Context, p models.Principal) (models.Principal, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertPrincipalQuery(p)
	if err != nil {
		return models.Principal{}, err
	}

	created, err := scanPrincipal(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			log.Debug().Str("func", "*principalRepository.CreatePrincipal").Msg("username already exists")
			return models.Principal{}, ErrUsernameTaken
		}
		log.Err(err).Str("func", "*principalRepository.CreatePrincipal").Msg("error inserting principal")
		return models.Principal{}, r.db.wrapError(err)
	}

	return created, nil
}

// FindPrincipalByUsername retrieves the principal with exactly this
// username.
func (r *principalRepository) FindPrincipalByUsername(ctx context.Context, username string) (models.Principal, error) {
	return r.findPrincipal(ctx, sq.Eq{"username": username})
}

// FindPrincipalByPublicID retrieves the principal with this public id.
func (r *principalRepository) FindPrincipalByPublicID(ctx context.Context, publicID uuid.UUID) (models.Principal, error) {
	return r.findPrincipal(ctx, sq.Eq{"public_id": publicID})
}

func (r *principalRepository) findPrincipal(ctx context.Context, where sq.Eq) (models.Principal, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectPrincipalQuery(where)
	if err != nil {
		return models.Principal{}, err
	}

	found, err := scanPrincipal(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Principal{}, ErrPrincipalNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*principalRepository.findPrincipal").Msg("error selecting principal")
		return models.Principal{}, r.db.wrapError(err)
	}

	return found, nil
}

// DeletePrincipal removes the principal; its tokens go with it through the
// ON DELETE CASCADE foreign key.
func (r *principalRepository) DeletePrincipal(ctx context.Context, publicID uuid.UUID) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeletePrincipalQuery(publicID)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*principalRepository.DeletePrincipal").Msg("error deleting principal")
		return r.db.wrapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return r.db.wrapError(err)
	}
	if affected == 0 {
		return ErrPrincipalNotFound
	}

	return nil
}

func scanPrincipal(row *sql.Row) (models.Principal, error) {
	var p models.Principal
	err := row.Scan(&p.ID, &p.PublicID, &p.Username, &p.PasswordHash, &p.Role, &p.CreatedAt)
	return p, err
}
