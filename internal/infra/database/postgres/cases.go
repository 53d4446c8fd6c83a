package postgres

import (
	"context"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/nelsferreir/meuescritoriodigital/internal/domain"
)

// caseSearchCond builds the typed OR filter for the case list.
//
// A comma-bearing query is a list of exact-title tokens (the alert links
// re-render the list this way): OR of title substring matches, one per
// trimmed token. Otherwise it is a three-way match: title substring,
// case_number substring, or client_id in the set of clients whose name
// matched the query (resolved by the caller). SQL wildcards are stripped
// from the raw query before matching.
func caseSearchCond(query string, clientIDs []domain.ClientID) sq.Sqlizer {
	cleaned := strings.NewReplacer("%", "", "_", "").Replace(query)

	if strings.Contains(cleaned, ",") {
		or := sq.Or{}
		for _, t := range strings.Split(cleaned, ",") {
			t = strings.TrimSpace(t)
			if t == "" {
				continue
			}
			or = append(or, sq.ILike{"c.title": likePattern(t)})
		}
		return or
	}

	or := sq.Or{
		sq.ILike{"c.title": likePattern(cleaned)},
		sq.ILike{"c.case_number": likePattern(cleaned)},
	}
	if len(clientIDs) > 0 {
		or = append(or, sq.Eq{"c.client_id": clientIDs})
	}
	return or
}

// cleanedCaseQuery mirrors the wildcard stripping caseSearchCond applies.
func cleanedCaseQuery(query string) string {
	return strings.NewReplacer("%", "", "_", "").Replace(query)
}

// clientIDsByName resolves the sub-query join emulation: ids of clients in
// the workspace whose name substring-matches the query.
func (r *PGRepo) clientIDsByName(ctx context.Context, ws domain.WorkspaceID, query string) ([]domain.ClientID, error) {
	q := r.qb().Select("id").
		From(r.table("clients")).
		Where(sq.Eq{"workspace_id": ws}).
		Where(sq.ILike{"name": likePattern(query)})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("clientIDsByName", sqlStr, args)

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []domain.ClientID
	for rows.Next() {
		var id domain.ClientID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

const caseColumns = "c.id, c.workspace_id, c.client_id, c.title, c.description, c.status, c.case_number, c.deadline, c.created_at, c.updated_at, cl.name"

func (r *PGRepo) CasesList(ctx context.Context, ws domain.WorkspaceID, f domain.CaseSearch) ([]domain.Case, error) {
	q := r.qb().Select(caseColumns).
		From(r.table("cases") + " c").
		Join(r.table("clients") + " cl ON cl.id = c.client_id").
		Where(sq.Eq{"c.workspace_id": ws}).
		OrderBy("c.created_at DESC")

	if f.ClientID != (domain.ClientID{}) {
		q = q.Where(sq.Eq{"c.client_id": f.ClientID})
	}

	if f.Query != "" {
		var clientIDs []domain.ClientID
		if !strings.Contains(cleanedCaseQuery(f.Query), ",") {
			ids, err := r.clientIDsByName(ctx, ws, cleanedCaseQuery(f.Query))
			if err != nil {
				r.logger.Printf("CasesList client lookup error: %v", err)
			} else {
				clientIDs = ids
			}
		}
		q = q.Where(caseSearchCond(f.Query, clientIDs))
	}

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CasesList", sqlStr, args)

	start := time.Now()
	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("CasesList query error after %s: %v", time.Since(start), err)
		return nil, err
	}
	defer rows.Close()

	var res []domain.Case
	for rows.Next() {
		var c domain.Case
		if err := rows.Scan(&c.ID, &c.WorkspaceID, &c.ClientID, &c.Title, &c.Description, &c.Status,
			&c.CaseNumber, &c.Deadline, &c.CreatedAt, &c.UpdatedAt, &c.ClientName); err != nil {
			r.logger.Printf("CasesList scan error: %v", err)
			return nil, err
		}
		res = append(res, c)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("CasesList rows error: %v", err)
		return nil, err
	}
	r.logger.Printf("CasesList ok in %s count=%d", time.Since(start), len(res))
	return res, nil
}

func (r *PGRepo) CaseByID(ctx context.Context, ws domain.WorkspaceID, id domain.CaseID) (domain.Case, error) {
	q := r.qb().Select(caseColumns).
		From(r.table("cases") + " c").
		Join(r.table("clients") + " cl ON cl.id = c.client_id").
		Where(sq.Eq{"c.id": id, "c.workspace_id": ws})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CaseByID", sqlStr, args)

	start := time.Now()
	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var c domain.Case
	if err := row.Scan(&c.ID, &c.WorkspaceID, &c.ClientID, &c.Title, &c.Description, &c.Status,
		&c.CaseNumber, &c.Deadline, &c.CreatedAt, &c.UpdatedAt, &c.ClientName); err != nil {
		r.logger.Printf("CaseByID scan error after %s: %v", time.Since(start), err)
		return domain.Case{}, mapNotFound(err)
	}
	r.logger.Printf("CaseByID ok in %s id=%s", time.Since(start), c.ID)
	return c, nil
}

func (r *PGRepo) CaseCreate(ctx context.Context, c domain.Case) (domain.Case, error) {
	q := r.qb().Insert(r.table("cases")).
		Columns("workspace_id", "client_id", "title", "description", "status", "case_number", "deadline").
		Values(c.WorkspaceID, c.ClientID, c.Title, c.Description, c.Status, c.CaseNumber, c.Deadline).
		Suffix("RETURNING id, workspace_id, client_id, title, description, status, case_number, deadline, created_at, updated_at")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CaseCreate", sqlStr, args)

	start := time.Now()
	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var out domain.Case
	if err := row.Scan(&out.ID, &out.WorkspaceID, &out.ClientID, &out.Title, &out.Description, &out.Status,
		&out.CaseNumber, &out.Deadline, &out.CreatedAt, &out.UpdatedAt); err != nil {
		r.logger.Printf("CaseCreate scan error after %s: %v", time.Since(start), err)
		return domain.Case{}, err
	}
	r.logger.Printf("CaseCreate ok in %s id=%s title=%q", time.Since(start), out.ID, out.Title)
	return out, nil
}

func (r *PGRepo) CaseUpdate(ctx context.Context, ws domain.WorkspaceID, id domain.CaseID, c domain.Case) error {
	q := r.qb().Update(r.table("cases")).
		SetMap(map[string]any{
			"title":       c.Title,
			"description": c.Description,
			"status":      c.Status,
			"case_number": c.CaseNumber,
			"deadline":    c.Deadline,
			"updated_at":  sq.Expr("now()"),
		}).
		Where(sq.Eq{"id": id, "workspace_id": ws})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CaseUpdate", sqlStr, args)

	start := time.Now()
	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("CaseUpdate exec error after %s: %v", time.Since(start), err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("CaseUpdate ok in %s id=%s", time.Since(start), id)
	return nil
}

func (r *PGRepo) CaseDelete(ctx context.Context, ws domain.WorkspaceID, id domain.CaseID) error {
	q := r.qb().Delete(r.table("cases")).
		Where(sq.Eq{"id": id, "workspace_id": ws})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CaseDelete", sqlStr, args)

	start := time.Now()
	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("CaseDelete exec error after %s: %v", time.Since(start), err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("CaseDelete ok in %s id=%s", time.Since(start), id)
	return nil
}

func (r *PGRepo) CaseStats(ctx context.Context, ws domain.WorkspaceID) (domain.CaseStats, error) {
	var stats domain.CaseStats
	for _, st := range []struct {
		status domain.CaseStatus
		dst    *int64
	}{
		{domain.CaseOpen, &stats.OpenCases},
		{domain.CasePending, &stats.PendingCases},
		{domain.CaseClosed, &stats.ClosedCases},
	} {
		n, err := r.CountCasesByStatus(ctx, ws, st.status)
		if err != nil {
			return domain.CaseStats{}, err
		}
		*st.dst = n
	}
	return stats, nil
}

func (r *PGRepo) OverdueCases(ctx context.Context, ws domain.WorkspaceID, now time.Time) ([]domain.CaseRef, error) {
	return r.caseRefs(ctx, "OverdueCases",
		sq.Eq{"workspace_id": ws},
		sq.Lt{"deadline": now},
		sq.Eq{"status": []domain.CaseStatus{domain.CaseOpen, domain.CasePending}},
	)
}

func (r *PGRepo) StaleCases(ctx context.Context, ws domain.WorkspaceID, before time.Time) ([]domain.CaseRef, error) {
	return r.caseRefs(ctx, "StaleCases",
		sq.Eq{"workspace_id": ws},
		sq.Lt{"updated_at": before},
		sq.Eq{"status": domain.CaseOpen},
	)
}

func (r *PGRepo) caseRefs(ctx context.Context, op string, conds ...sq.Sqlizer) ([]domain.CaseRef, error) {
	q := r.qb().Select("id", "title").From(r.table("cases"))
	for _, c := range conds {
		q = q.Where(c)
	}

	sqlStr, args, _ := q.ToSql()
	r.logSQL(op, sqlStr, args)

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("%s query error: %v", op, err)
		return nil, err
	}
	defer rows.Close()

	var refs []domain.CaseRef
	for rows.Next() {
		var ref domain.CaseRef
		if err := rows.Scan(&ref.ID, &ref.Title); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}
