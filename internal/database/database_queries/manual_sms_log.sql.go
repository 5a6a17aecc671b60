package database_queries

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const smsLogInsert = `-- name: SmsLogInsert :one
INSERT INTO sms_log (
  phone,
  message_class,
  outcome,
  job_id,
  error_code,
  mocked
)
VALUES (
  $1::text,
  $2::text,
  $3::text,
  $4,
  $5,
  $6::bool
)
RETURNING id, phone, message_class, outcome, job_id, error_code, mocked, created_at
`

type SmsLogInsertParams struct {
	Phone        string
	MessageClass string
	Outcome      string
	JobID        pgtype.Text
	ErrorCode    pgtype.Int4
	Mocked       bool
}

func (q *Queries) SmsLogInsert(ctx context.Context, arg SmsLogInsertParams) (SmsLog, error) {
	row := q.db.QueryRow(ctx, smsLogInsert,
		arg.Phone,
		arg.MessageClass,
		arg.Outcome,
		arg.JobID,
		arg.ErrorCode,
		arg.Mocked,
	)
	var i SmsLog
	err := row.Scan(
		&i.ID,
		&i.Phone,
		&i.MessageClass,
		&i.Outcome,
		&i.JobID,
		&i.ErrorCode,
		&i.Mocked,
		&i.CreatedAt,
	)
	return i, err
}

const smsLogListRecentByPhone = `-- name: SmsLogListRecentByPhone :many
SELECT id, phone, message_class, outcome, job_id, error_code, mocked, created_at
FROM sms_log
WHERE phone = $1::text
ORDER BY created_at DESC
LIMIT $2::int
`

func (q *Queries) SmsLogListRecentByPhone(ctx context.Context, phone string, limit int32) ([]SmsLog, error) {
	rows, err := q.db.Query(ctx, smsLogListRecentByPhone, phone, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []SmsLog{}
	for rows.Next() {
		var i SmsLog
		if err := rows.Scan(
			&i.ID,
			&i.Phone,
			&i.MessageClass,
			&i.Outcome,
			&i.JobID,
			&i.ErrorCode,
			&i.Mocked,
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

const smsLogCountForPhoneSince = `-- name: SmsLogCountForPhoneSince :one
SELECT count(*)
FROM sms_log
WHERE phone = $1::text
  AND created_at >= $2::timestamptz
`

func (q *Queries) SmsLogCountForPhoneSince(ctx context.Context, phone string, since pgtype.Timestamptz) (int64, error) {
	row := q.db.QueryRow(ctx, smsLogCountForPhoneSince, phone, since)
	var count int64
	err := row.Scan(&count)
	return count, err
}
