package database_queries

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const verificationAuditInsert = `-- name: VerificationAuditInsert :one
INSERT INTO verification_audit (
  verification_id,
  channel,
  target,
  event,
  request_ip
)
VALUES (
  $1,
  $2::text,
  $3::text,
  $4::text,
  $5
)
RETURNING id, verification_id, channel, target, event, request_ip, created_at
`

type VerificationAuditInsertParams struct {
	VerificationID pgtype.UUID
	Channel        string
	Target         string
	Event          string
	RequestIp      *string
}

func (q *Queries) VerificationAuditInsert(ctx context.Context, arg VerificationAuditInsertParams) (VerificationAudit, error) {
	row := q.db.QueryRow(ctx, verificationAuditInsert,
		arg.VerificationID,
		arg.Channel,
		arg.Target,
		arg.Event,
		arg.RequestIp,
	)
	var i VerificationAudit
	err := row.Scan(
		&i.ID,
		&i.VerificationID,
		&i.Channel,
		&i.Target,
		&i.Event,
		&i.RequestIp,
		&i.CreatedAt,
	)
	return i, err
}

const verificationAuditListForVerification = `-- name: VerificationAuditListForVerification :many
SELECT id, verification_id, channel, target, event, request_ip, created_at
FROM verification_audit
WHERE verification_id = $1
ORDER BY created_at ASC
`

func (q *Queries) VerificationAuditListForVerification(ctx context.Context, verificationID pgtype.UUID) ([]VerificationAudit, error) {
	rows, err := q.db.Query(ctx, verificationAuditListForVerification, verificationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []VerificationAudit{}
	for rows.Next() {
		var i VerificationAudit
		if err := rows.Scan(
			&i.ID,
			&i.VerificationID,
			&i.Channel,
			&i.Target,
			&i.Event,
			&i.RequestIp,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
