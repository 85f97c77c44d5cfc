package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/domain/entity"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/domain/repository"
)

type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func (r *AuditRepository) Insert(ctx context.Context, l entity.AuditLog) error {
	var md any
	if len(l.Metadata) > 0 {
		md = l.Metadata
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO auth_audit_logs (user_id, email, action, ip, user_agent, metadata)
		VALUES (NULLIF($1, '')::uuid, NULLIF($2, ''), $3, NULLIF($4, ''), NULLIF($5, ''), $6)
	`, l.UserID, l.Email, l.Action, l.IP, l.UserAgent, md)
	return err
}

var _ repository.AuditRepository = (*AuditRepository)(nil)
