package server

import (
	"errors"
	"expvar"
	"net/http"
	"net/http/pprof"

	dbutils "github.com/fieldmaker/verify-backend/internal/utils/db_utils"
	"github.com/fieldmaker/verify-backend/internal/utils/phonenumber"
	"github.com/google/uuid"
)

func devToolsRouter(s *Server) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.healthHandler)
	mux.HandleFunc("GET /sms-log", s.smsLogHandler)
	mux.HandleFunc("GET /audit", s.auditTrailHandler)

	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, r.RequestURI+"/pprof/", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/pprof", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, r.RequestURI+"/", http.StatusMovedPermanently)
	})

	mux.HandleFunc("/pprof/*", pprof.Index)
	mux.HandleFunc("/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/pprof/profile", pprof.Profile)
	mux.HandleFunc("/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/pprof/trace", pprof.Trace)
	mux.Handle("/vars", expvar.Handler())

	mux.Handle("/pprof/goroutine", pprof.Handler("goroutine"))
	mux.Handle("/pprof/threadcreate", pprof.Handler("threadcreate"))
	mux.Handle("/pprof/mutex", pprof.Handler("mutex"))
	mux.Handle("/pprof/heap", pprof.Handler("heap"))
	mux.Handle("/pprof/block", pprof.Handler("block"))
	mux.Handle("/pprof/allocs", pprof.Handler("allocs"))

	return mux
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJson(r.Context(), w, http.StatusOK, s.db.Health(r.Context()))
}

// smsLogHandler lists the latest send attempts for one subscriber, handy
// when chasing a delivery complaint.
func (s *Server) smsLogHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	phone, err := phonenumber.Parse(r.FormValue("phone"))
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, err)
		return
	}

	rows, err := s.db.Queries.SmsLogListRecentByPhone(ctx, phone.Canonical(), 50)
	if err != nil {
		writeError(ctx, w, http.StatusInternalServerError, err)
		return
	}

	writeJson(ctx, w, http.StatusOK, rows)
}

func (s *Server) auditTrailHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	verificationId, err := uuid.Parse(r.FormValue("verification_id"))
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, errors.New("invalid verification_id"))
		return
	}

	rows, err := s.db.Queries.VerificationAuditListForVerification(ctx, dbutils.ToPgTypeUUID(verificationId))
	if err != nil {
		writeError(ctx, w, http.StatusInternalServerError, err)
		return
	}

	writeJson(ctx, w, http.StatusOK, rows)
}
