package postgres

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/nelsferreir/meuescritoriodigital/internal/domain"
)

// clientSearchCond is the typed filter for the client list: substring match,
// case-insensitive, against name OR email OR phone.
func clientSearchCond(query string) sq.Sqlizer {
	p := likePattern(query)
	return sq.Or{
		sq.ILike{"name": p},
		sq.ILike{"email": p},
		sq.ILike{"phone": p},
	}
}

func (r *PGRepo) ClientsList(ctx context.Context, ws domain.WorkspaceID, query string) ([]domain.Client, error) {
	q := r.qb().Select("id", "workspace_id", "name", "email", "phone", "document_number", "created_at", "updated_at").
		From(r.table("clients")).
		Where(sq.Eq{"workspace_id": ws}).
		OrderBy("created_at DESC")

	if query != "" {
		q = q.Where(clientSearchCond(query))
	}

	sqlStr, args, _ := q.ToSql()
	r.logSQL("ClientsList", sqlStr, args)

	start := time.Now()
	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("ClientsList query error after %s: %v", time.Since(start), err)
		return nil, err
	}
	defer rows.Close()

	var res []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.WorkspaceID, &c.Name, &c.Email, &c.Phone, &c.DocumentNumber, &c.CreatedAt, &c.UpdatedAt); err != nil {
			r.logger.Printf("ClientsList scan error: %v", err)
			return nil, err
		}
		res = append(res, c)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("ClientsList rows error: %v", err)
		return nil, err
	}
	r.logger.Printf("ClientsList ok in %s count=%d", time.Since(start), len(res))
	return res, nil
}

func (r *PGRepo) ClientByID(ctx context.Context, ws domain.WorkspaceID, id domain.ClientID) (domain.Client, error) {
	q := r.qb().Select("id", "workspace_id", "name", "email", "phone", "document_number", "created_at", "updated_at").
		From(r.table("clients")).
		Where(sq.Eq{"id": id, "workspace_id": ws})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("ClientByID", sqlStr, args)

	start := time.Now()
	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var c domain.Client
	if err := row.Scan(&c.ID, &c.WorkspaceID, &c.Name, &c.Email, &c.Phone, &c.DocumentNumber, &c.CreatedAt, &c.UpdatedAt); err != nil {
		r.logger.Printf("ClientByID scan error after %s: %v", time.Since(start), err)
		return domain.Client{}, mapNotFound(err)
	}
	r.logger.Printf("ClientByID ok in %s id=%s", time.Since(start), c.ID)
	return c, nil
}

// ClientCreate inserts a client. The friendly duplicate pre-check keeps the
// inline error message; the partial unique index backstops the race.
func (r *PGRepo) ClientCreate(ctx context.Context, c domain.Client) (domain.Client, error) {
	if c.DocumentNumber != "" {
		exists, err := r.clientDocumentNumberExists(ctx, c.WorkspaceID, c.DocumentNumber)
		if err != nil {
			return domain.Client{}, err
		}
		if exists {
			return domain.Client{}, domain.ErrDuplicateDocumentNumber
		}
	}

	q := r.qb().Insert(r.table("clients")).
		Columns("workspace_id", "name", "email", "phone", "document_number").
		Values(c.WorkspaceID, c.Name, c.Email, c.Phone, c.DocumentNumber).
		Suffix("RETURNING id, workspace_id, name, email, phone, document_number, created_at, updated_at")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("ClientCreate", sqlStr, args)

	start := time.Now()
	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var out domain.Client
	if err := row.Scan(&out.ID, &out.WorkspaceID, &out.Name, &out.Email, &out.Phone, &out.DocumentNumber, &out.CreatedAt, &out.UpdatedAt); err != nil {
		r.logger.Printf("ClientCreate scan error after %s: %v", time.Since(start), err)
		if isUniqueViolation(err) {
			return domain.Client{}, domain.ErrDuplicateDocumentNumber
		}
		return domain.Client{}, err
	}
	r.logger.Printf("ClientCreate ok in %s id=%s name=%q", time.Since(start), out.ID, out.Name)
	return out, nil
}

func (r *PGRepo) clientDocumentNumberExists(ctx context.Context, ws domain.WorkspaceID, docNumber string) (bool, error) {
	q := r.qb().Select("1").
		From(r.table("clients")).
		Where(sq.Eq{"workspace_id": ws, "document_number": docNumber}).
		Limit(1)

	sqlStr, args, _ := q.ToSql()
	r.logSQL("clientDocumentNumberExists", sqlStr, args)

	var one int
	err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(&one)
	if err != nil {
		if errors.Is(mapNotFound(err), domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *PGRepo) ClientUpdate(ctx context.Context, ws domain.WorkspaceID, id domain.ClientID, c domain.Client) error {
	q := r.qb().Update(r.table("clients")).
		SetMap(map[string]any{
			"name":            c.Name,
			"email":           c.Email,
			"phone":           c.Phone,
			"document_number": c.DocumentNumber,
			"updated_at":      sq.Expr("now()"),
		}).
		Where(sq.Eq{"id": id, "workspace_id": ws})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("ClientUpdate", sqlStr, args)

	start := time.Now()
	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("ClientUpdate exec error after %s: %v", time.Since(start), err)
		if isUniqueViolation(err) {
			return domain.ErrDuplicateDocumentNumber
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("ClientUpdate ok in %s id=%s", time.Since(start), id)
	return nil
}

// ClientDelete is an unconditional hard delete; dependent cases cascade.
func (r *PGRepo) ClientDelete(ctx context.Context, ws domain.WorkspaceID, id domain.ClientID) error {
	q := r.qb().Delete(r.table("clients")).
		Where(sq.Eq{"id": id, "workspace_id": ws})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("ClientDelete", sqlStr, args)

	start := time.Now()
	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("ClientDelete exec error after %s: %v", time.Since(start), err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("ClientDelete ok in %s id=%s", time.Since(start), id)
	return nil
}

func (r *PGRepo) ClientStats(ctx context.Context, ws domain.WorkspaceID, now time.Time) (domain.ClientStats, error) {
	var stats domain.ClientStats

	total, err := r.countWhere(ctx, "ClientStats.total", "clients", sq.Eq{"workspace_id": ws})
	if err != nil {
		return stats, err
	}

	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	newThisMonth, err := r.countWhere(ctx, "ClientStats.newThisMonth", "clients",
		sq.Eq{"workspace_id": ws}, sq.GtOrEq{"created_at": firstOfMonth})
	if err != nil {
		return stats, err
	}

	// active = distinct clients with at least one open case
	q := r.qb().Select("COUNT(DISTINCT client_id)").
		From(r.table("cases")).
		Where(sq.Eq{"workspace_id": ws, "status": domain.CaseOpen})
	sqlStr, args, _ := q.ToSql()
	r.logSQL("ClientStats.active", sqlStr, args)

	var active int64
	if err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(&active); err != nil {
		r.logger.Printf("ClientStats active scan error: %v", err)
		return stats, err
	}

	stats.TotalClients = total
	stats.NewClientsThisMonth = newThisMonth
	stats.ActiveClients = active
	return stats, nil
}
