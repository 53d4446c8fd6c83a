package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/nelsferreir/meuescritoriodigital/internal/domain"
)

func (r *PGRepo) ProfileByEmail(ctx context.Context, email string) (domain.Profile, error) {
	q := r.qb().Select("id", "email", "full_name", "pass_hash", "created_at").
		From(r.table("profiles")).
		Where(sq.Eq{"email": email})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("ProfileByEmail", sqlStr, args)

	start := time.Now()
	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var p domain.Profile
	if err := row.Scan(&p.ID, &p.Email, &p.FullName, &p.PassHash, &p.CreatedAt); err != nil {
		r.logger.Printf("ProfileByEmail scan error after %s: %v", time.Since(start), err)
		return domain.Profile{}, mapNotFound(err)
	}
	r.logger.Printf("ProfileByEmail ok in %s id=%s", time.Since(start), p.ID)
	return p, nil
}

func (r *PGRepo) ProfileByID(ctx context.Context, id domain.ProfileID) (domain.Profile, error) {
	q := r.qb().Select("id", "email", "full_name", "pass_hash", "created_at").
		From(r.table("profiles")).
		Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("ProfileByID", sqlStr, args)

	start := time.Now()
	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var p domain.Profile
	if err := row.Scan(&p.ID, &p.Email, &p.FullName, &p.PassHash, &p.CreatedAt); err != nil {
		r.logger.Printf("ProfileByID scan error after %s: %v", time.Since(start), err)
		return domain.Profile{}, mapNotFound(err)
	}
	r.logger.Printf("ProfileByID ok in %s id=%s", time.Since(start), p.ID)
	return p, nil
}

// Provision creates the profile, its workspace and the owner membership in a
// single transaction so a mid-sequence failure cannot leave a half-created
// account behind.
func (r *PGRepo) Provision(ctx context.Context, email, fullName string, passHash []byte, workspaceName string) (domain.Profile, domain.Workspace, error) {
	start := time.Now()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.Profile{}, domain.Workspace{}, err
	}
	defer tx.Rollback(ctx)

	var p domain.Profile
	{
		q := r.qb().Insert(r.table("profiles")).
			Columns("email", "full_name", "pass_hash").
			Values(email, fullName, string(passHash)).
			Suffix("RETURNING id, email, full_name, pass_hash, created_at")
		sqlStr, args, _ := q.ToSql()
		r.logSQL("Provision.profile", sqlStr, args)

		if err := tx.QueryRow(ctx, sqlStr, args...).
			Scan(&p.ID, &p.Email, &p.FullName, &p.PassHash, &p.CreatedAt); err != nil {
			r.logger.Printf("Provision profile error after %s: %v", time.Since(start), err)
			if isUniqueViolation(err) {
				return domain.Profile{}, domain.Workspace{}, fmt.Errorf("email taken: %w", domain.ErrBadParams)
			}
			return domain.Profile{}, domain.Workspace{}, err
		}
	}

	var ws domain.Workspace
	{
		q := r.qb().Insert(r.table("workspaces")).
			Columns("owner_id", "name").
			Values(p.ID, workspaceName).
			Suffix("RETURNING id, owner_id, name, created_at")
		sqlStr, args, _ := q.ToSql()
		r.logSQL("Provision.workspace", sqlStr, args)

		if err := tx.QueryRow(ctx, sqlStr, args...).
			Scan(&ws.ID, &ws.OwnerID, &ws.Name, &ws.CreatedAt); err != nil {
			r.logger.Printf("Provision workspace error after %s: %v", time.Since(start), err)
			return domain.Profile{}, domain.Workspace{}, err
		}
	}

	{
		q := r.qb().Insert(r.table("workspace_members")).
			Columns("workspace_id", "profile_id", "role").
			Values(ws.ID, p.ID, "owner")
		sqlStr, args, _ := q.ToSql()
		r.logSQL("Provision.membership", sqlStr, args)

		if _, err := tx.Exec(ctx, sqlStr, args...); err != nil {
			r.logger.Printf("Provision membership error after %s: %v", time.Since(start), err)
			return domain.Profile{}, domain.Workspace{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Profile{}, domain.Workspace{}, err
	}
	r.logger.Printf("Provision ok in %s profile=%s workspace=%s", time.Since(start), p.ID, ws.ID)
	return p, ws, nil
}

func (r *PGRepo) UpdatePassword(ctx context.Context, id domain.ProfileID, passHash []byte) error {
	q := r.qb().Update(r.table("profiles")).
		Set("pass_hash", string(passHash)).
		Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("UpdatePassword", sqlStr, args)

	start := time.Now()
	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("UpdatePassword exec error after %s: %v", time.Since(start), err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("UpdatePassword ok in %s id=%s", time.Since(start), id)
	return nil
}
