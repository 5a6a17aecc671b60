package database_queries

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type SmsLog struct {
	ID           int64
	Phone        string
	MessageClass string
	Outcome      string
	JobID        pgtype.Text
	ErrorCode    pgtype.Int4
	Mocked       bool
	CreatedAt    pgtype.Timestamptz
}

type VerificationAudit struct {
	ID             int64
	VerificationID pgtype.UUID
	Channel        string
	Target         string
	Event          string
	RequestIp      *string
	CreatedAt      pgtype.Timestamptz
}
