package verification

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fieldmaker/verify-backend/internal/apperr"
	"github.com/google/uuid"
)

type Channel string

const (
	ChannelSms   Channel = "sms"
	ChannelEmail Channel = "email"
)

func (c Channel) String() string {
	return string(c)
}

func (c *Channel) FromString(str string) (*Channel, error) {
	switch {
	case ChannelSms.String() == str:
		*c = ChannelSms

	case ChannelEmail.String() == str:
		*c = ChannelEmail

	default:
		c = nil
		return c, apperr.ErrVerificationNotFound
	}

	return c, nil
}

func (c Channel) Fold(onSms func(), onEmail func()) {
	c.FoldOr(
		onSms,
		onEmail,
		func() {
			panic(fmt.Sprintf("Not supported verification channel %s", c.String()))
		},
	)
}

func (c Channel) FoldOr(onSms func(), onEmail func(), orElse func()) {
	switch c {
	case ChannelSms:
		onSms()
	case ChannelEmail:
		onEmail()
	default:
		orElse()
	}
}

// TempVerification lives in the cache database between the send and the
// check. The raw code is never stored, only its hash.
type TempVerification struct {
	Id         uuid.UUID // used as a key
	Channel    Channel
	Target     string // canonical phone (90XXXXXXXXXX) or email address
	HashedCode string
	Attempts   int
	Mocked     bool
	CreatedAt  time.Time
}

func (tv TempVerification) ToMap() map[string]string {
	m := make(map[string]string, 6)
	m["channel"] = tv.Channel.String()
	m["target"] = tv.Target
	m["hashed_code"] = tv.HashedCode
	m["attempts"] = strconv.Itoa(tv.Attempts)
	m["mocked"] = strconv.FormatBool(tv.Mocked)
	m["created_at"] = strconv.FormatInt(tv.CreatedAt.Unix(), 10)
	return m
}

func (tv *TempVerification) FromMap(m map[string]string) *TempVerification {
	tv.Channel = Channel(m["channel"])
	tv.Target = m["target"]
	tv.HashedCode = m["hashed_code"]
	tv.Attempts, _ = strconv.Atoi(m["attempts"])
	tv.Mocked, _ = strconv.ParseBool(m["mocked"])
	createdAtUnix, _ := strconv.ParseInt(m["created_at"], 10, 64)
	tv.CreatedAt = time.Unix(createdAtUnix, 0)
	return tv
}

func (tv TempVerification) ValidateForStore() (ok bool) {
	ok = tv.Id != uuid.Nil
	ok = ok && len(tv.Target) != 0
	ok = ok && len(tv.HashedCode) != 0
	ok = ok && !tv.CreatedAt.IsZero()

	tv.Channel.FoldOr(
		func() {},
		func() {},
		func() { ok = false },
	)

	return ok
}

// StartedVerification goes back to the client after a successful send.
type StartedVerification struct {
	Id        uuid.UUID `json:"verification_id"`
	Channel   Channel   `json:"channel"`
	Target    string    `json:"target"`
	ExpiresIn int       `json:"expires_in_seconds"`
	Mocked    bool      `json:"mocked"`
}

// VerifiedResult carries the signed proof of a completed verification.
type VerifiedResult struct {
	Token      string    `json:"token"`
	TokenExpAt time.Time `json:"token_expires_at"`
	Channel    Channel   `json:"channel"`
	Target     string    `json:"target"`
}
