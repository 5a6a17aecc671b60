package server

import (
	"net/http"
)

func (s *Server) LoggerInjector(h http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.ServeHTTP(w, r.WithContext(s.log.WithContext(r.Context())))
	}
}
