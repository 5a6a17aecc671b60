package middleware

import (
	"net/http"

	"github.com/fieldmaker/verify-backend/internal/l10n"
	"github.com/rs/zerolog"
)

func LocalizerInjector(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		lang := r.Header.Get("Accept-Language")
		langQP := r.FormValue("lang")
		if langQP != "" {
			lang = langQP
		}

		// the subscriber base is domestic, clients that do not say
		// otherwise get Turkish
		if lang == "" {
			lang = "tr"
		}

		ctx = l10n.ContextWithLocalizer(ctx, l10n.GetLocalizer(lang))
		ctx = zerolog.Ctx(ctx).With().Str("lang", lang).Logger().WithContext(ctx)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}
