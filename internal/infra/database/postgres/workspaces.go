package postgres

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/nelsferreir/meuescritoriodigital/internal/domain"
)

// WorkspaceByOwner resolves the caller's tenant. Single-row lookup: the
// unique index on owner_id guarantees at most one row.
func (r *PGRepo) WorkspaceByOwner(ctx context.Context, owner domain.ProfileID) (domain.Workspace, error) {
	q := r.qb().Select("id", "owner_id", "name", "created_at").
		From(r.table("workspaces")).
		Where(sq.Eq{"owner_id": owner})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("WorkspaceByOwner", sqlStr, args)

	start := time.Now()
	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var ws domain.Workspace
	if err := row.Scan(&ws.ID, &ws.OwnerID, &ws.Name, &ws.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Workspace{}, domain.ErrNoWorkspace
		}
		r.logger.Printf("WorkspaceByOwner scan error after %s: %v", time.Since(start), err)
		return domain.Workspace{}, err
	}
	r.logger.Printf("WorkspaceByOwner ok in %s workspace=%s", time.Since(start), ws.ID)
	return ws, nil
}
