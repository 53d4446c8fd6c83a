package postgres

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/nelsferreir/meuescritoriodigital/internal/domain"
)

const documentColumns = "d.id, d.workspace_id, d.case_id, d.name, d.path, d.created_at, c.title"

func (r *PGRepo) DocumentCreate(ctx context.Context, d domain.Document) (domain.Document, error) {
	q := r.qb().Insert(r.table("documents")).
		Columns("workspace_id", "case_id", "name", "path").
		Values(d.WorkspaceID, d.CaseID, d.Name, d.Path).
		Suffix("RETURNING id, workspace_id, case_id, name, path, created_at")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("DocumentCreate", sqlStr, args)

	start := time.Now()
	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var out domain.Document
	if err := row.Scan(&out.ID, &out.WorkspaceID, &out.CaseID, &out.Name, &out.Path, &out.CreatedAt); err != nil {
		r.logger.Printf("DocumentCreate scan error after %s: %v", time.Since(start), err)
		return domain.Document{}, err
	}
	r.logger.Printf("DocumentCreate ok in %s id=%s path=%s", time.Since(start), out.ID, out.Path)
	return out, nil
}

func (r *PGRepo) DocumentByID(ctx context.Context, ws domain.WorkspaceID, id domain.DocumentID) (domain.Document, error) {
	q := r.qb().Select(documentColumns).
		From(r.table("documents") + " d").
		Join(r.table("cases") + " c ON c.id = d.case_id").
		Where(sq.Eq{"d.id": id, "d.workspace_id": ws})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("DocumentByID", sqlStr, args)

	start := time.Now()
	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var d domain.Document
	if err := row.Scan(&d.ID, &d.WorkspaceID, &d.CaseID, &d.Name, &d.Path, &d.CreatedAt, &d.CaseTitle); err != nil {
		r.logger.Printf("DocumentByID scan error after %s: %v", time.Since(start), err)
		return domain.Document{}, mapNotFound(err)
	}
	r.logger.Printf("DocumentByID ok in %s id=%s", time.Since(start), d.ID)
	return d, nil
}

func (r *PGRepo) DocumentsByCase(ctx context.Context, ws domain.WorkspaceID, caseID domain.CaseID) ([]domain.Document, error) {
	return r.documentList(ctx, "DocumentsByCase",
		sq.Eq{"d.workspace_id": ws, "d.case_id": caseID})
}

func (r *PGRepo) DocumentsByWorkspace(ctx context.Context, ws domain.WorkspaceID) ([]domain.Document, error) {
	return r.documentList(ctx, "DocumentsByWorkspace",
		sq.Eq{"d.workspace_id": ws})
}

func (r *PGRepo) documentList(ctx context.Context, op string, cond sq.Sqlizer) ([]domain.Document, error) {
	q := r.qb().Select(documentColumns).
		From(r.table("documents") + " d").
		Join(r.table("cases") + " c ON c.id = d.case_id").
		Where(cond).
		OrderBy("d.created_at DESC")

	sqlStr, args, _ := q.ToSql()
	r.logSQL(op, sqlStr, args)

	start := time.Now()
	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("%s query error after %s: %v", op, time.Since(start), err)
		return nil, err
	}
	defer rows.Close()

	var res []domain.Document
	for rows.Next() {
		var d domain.Document
		if err := rows.Scan(&d.ID, &d.WorkspaceID, &d.CaseID, &d.Name, &d.Path, &d.CreatedAt, &d.CaseTitle); err != nil {
			r.logger.Printf("%s scan error: %v", op, err)
			return nil, err
		}
		res = append(res, d)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("%s rows error: %v", op, err)
		return nil, err
	}
	r.logger.Printf("%s ok in %s count=%d", op, time.Since(start), len(res))
	return res, nil
}

// DocumentDelete removes the metadata row only. Callers delete the blob
// first so a storage failure never leaves a row pointing at a live object
// nobody can reach.
func (r *PGRepo) DocumentDelete(ctx context.Context, ws domain.WorkspaceID, id domain.DocumentID) error {
	q := r.qb().Delete(r.table("documents")).
		Where(sq.Eq{"id": id, "workspace_id": ws})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("DocumentDelete", sqlStr, args)

	start := time.Now()
	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("DocumentDelete exec error after %s: %v", time.Since(start), err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("DocumentDelete ok in %s id=%s", time.Since(start), id)
	return nil
}
