package server

import (
	"github.com/fieldmaker/verify-backend/internal/feat/notification"
	"github.com/fieldmaker/verify-backend/internal/feat/verification"
	"github.com/fieldmaker/verify-backend/internal/utils/codehash"
)

func (s *Server) NewVerificationRepository() verification.Repository {
	return verification.NewRepository(
		verification.NewDataSource(s.db, s.rdb),
		s.gatewaysProvider,
		codehash.NewCodeHasher(), // changing this value will invalidate codes already in flight
		s.verifyJWT,
	)
}

func (s *Server) NewNotificationSender() *notification.Sender {
	return notification.NewSender(s.gatewaysProvider)
}
