package verification

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldmaker/verify-backend/internal/apperr"
	"github.com/fieldmaker/verify-backend/internal/database"
	"github.com/fieldmaker/verify-backend/internal/database/database_queries"
	dbutils "github.com/fieldmaker/verify-backend/internal/utils/db_utils"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// temp records outlive the code validity window so an expired code can be
// told apart from an unknown verification id
const tempVerificationRetention = time.Minute * 10

type DataSource interface {
	// Query ---

	GetVerificationFromTempCache(ctx context.Context, id uuid.UUID) (*TempVerification, error)

	SmsLogCountForPhoneSince(ctx context.Context, phone string, since time.Time) (int64, error)

	// Create ---

	StoreVerificationInTempCache(ctx context.Context, tVerification TempVerification) error
	InsertSmsLog(ctx context.Context, arg database_queries.SmsLogInsertParams) error
	InsertAuditEvent(ctx context.Context, arg database_queries.VerificationAuditInsertParams) error

	// Update ---

	IncrVerificationAttempts(ctx context.Context, id uuid.UUID) (int64, error)

	// Delete ---

	DeleteVerificationFromTempCache(ctx context.Context, id uuid.UUID) error
}

type dataSourceImpl struct {
	db    *database.Service
	redis *redis.Client
}

func NewDataSource(db *database.Service, redis *redis.Client) DataSource {
	return &dataSourceImpl{db: db, redis: redis}
}

func genTempVerificationKey(id uuid.UUID) string {
	return fmt.Sprint("verification:tmp:", id.String())
}

func (ds dataSourceImpl) StoreVerificationInTempCache(ctx context.Context, tVerification TempVerification) error {
	key := genTempVerificationKey(tVerification.Id)

	pip := ds.redis.TxPipeline()
	pip.Del(ctx, key)
	pip.HSet(ctx, key, tVerification.ToMap())
	pip.Expire(ctx, key, tempVerificationRetention)
	resultArray, err := pip.Exec(ctx)

	if err != nil {
		return err
	}

	for _, cmdResult := range resultArray {
		if cmdResult.Err() != nil {
			return cmdResult.Err()
		}
	}

	return nil
}

func (ds dataSourceImpl) GetVerificationFromTempCache(ctx context.Context, id uuid.UUID) (*TempVerification, error) {
	key := genTempVerificationKey(id)

	result, err := ds.redis.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	if len(result) == 0 {
		return nil, apperr.ErrNoResult
	}

	tVerification := new(TempVerification).FromMap(result)
	tVerification.Id = id

	return tVerification, nil
}

func (ds dataSourceImpl) IncrVerificationAttempts(ctx context.Context, id uuid.UUID) (int64, error) {
	key := genTempVerificationKey(id)
	return ds.redis.HIncrBy(ctx, key, "attempts", 1).Result()
}

func (ds dataSourceImpl) DeleteVerificationFromTempCache(ctx context.Context, id uuid.UUID) error {
	return ds.redis.Del(ctx, genTempVerificationKey(id)).Err()
}

func (ds dataSourceImpl) InsertSmsLog(ctx context.Context, arg database_queries.SmsLogInsertParams) error {
	_, err := ds.db.Queries.SmsLogInsert(ctx, arg)
	return err
}

func (ds dataSourceImpl) SmsLogCountForPhoneSince(ctx context.Context, phone string, since time.Time) (int64, error) {
	return ds.db.Queries.SmsLogCountForPhoneSince(ctx, phone, dbutils.ToPgTypeTimestamptz(since))
}

func (ds dataSourceImpl) InsertAuditEvent(ctx context.Context, arg database_queries.VerificationAuditInsertParams) error {
	_, err := ds.db.Queries.VerificationAuditInsert(ctx, arg)
	return err
}
