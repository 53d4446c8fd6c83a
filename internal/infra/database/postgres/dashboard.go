package postgres

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/nelsferreir/meuescritoriodigital/internal/domain"
)

// countWhere runs a COUNT(*) with each condition AND-ed in.
func (r *PGRepo) countWhere(ctx context.Context, op, table string, conds ...sq.Sqlizer) (int64, error) {
	q := r.qb().Select("COUNT(*)").From(r.table(table))
	for _, c := range conds {
		q = q.Where(c)
	}

	sqlStr, args, _ := q.ToSql()
	r.logSQL(op, sqlStr, args)

	var n int64
	if err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(&n); err != nil {
		r.logger.Printf("%s scan error: %v", op, err)
		return 0, err
	}
	return n, nil
}

func (r *PGRepo) CountClients(ctx context.Context, ws domain.WorkspaceID) (int64, error) {
	return r.countWhere(ctx, "CountClients", "clients", sq.Eq{"workspace_id": ws})
}

func (r *PGRepo) CountCases(ctx context.Context, ws domain.WorkspaceID) (int64, error) {
	return r.countWhere(ctx, "CountCases", "cases", sq.Eq{"workspace_id": ws})
}

func (r *PGRepo) CountCasesByStatus(ctx context.Context, ws domain.WorkspaceID, status domain.CaseStatus) (int64, error) {
	return r.countWhere(ctx, "CountCasesByStatus."+string(status), "cases",
		sq.Eq{"workspace_id": ws, "status": status})
}

func (r *PGRepo) CountDocuments(ctx context.Context, ws domain.WorkspaceID) (int64, error) {
	return r.countWhere(ctx, "CountDocuments", "documents", sq.Eq{"workspace_id": ws})
}

func (r *PGRepo) CountDeadlinesBetween(ctx context.Context, ws domain.WorkspaceID, from, to time.Time) (int64, error) {
	return r.countWhere(ctx, "CountDeadlinesBetween", "cases",
		sq.Eq{"workspace_id": ws},
		sq.GtOrEq{"deadline": from},
		sq.LtOrEq{"deadline": to},
	)
}

func (r *PGRepo) RecentClients(ctx context.Context, ws domain.WorkspaceID, limit int) ([]domain.RecentEntry, error) {
	return r.recentEntries(ctx, "RecentClients", "clients", "name", ws, limit)
}

func (r *PGRepo) RecentCases(ctx context.Context, ws domain.WorkspaceID, limit int) ([]domain.RecentEntry, error) {
	return r.recentEntries(ctx, "RecentCases", "cases", "title", ws, limit)
}

func (r *PGRepo) recentEntries(ctx context.Context, op, table, nameCol string, ws domain.WorkspaceID, limit int) ([]domain.RecentEntry, error) {
	q := r.qb().Select(nameCol, "created_at", "updated_at").
		From(r.table(table)).
		Where(sq.Eq{"workspace_id": ws}).
		OrderBy("updated_at DESC").
		Limit(uint64(limit))

	sqlStr, args, _ := q.ToSql()
	r.logSQL(op, sqlStr, args)

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("%s query error: %v", op, err)
		return nil, err
	}
	defer rows.Close()

	var res []domain.RecentEntry
	for rows.Next() {
		var e domain.RecentEntry
		if err := rows.Scan(&e.Name, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}
