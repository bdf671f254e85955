package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"signupform/internal/service"
)

type RouterOpts struct {
	Logger *slog.Logger
	IsProd bool

	DBPing func(context.Context) error

	Signup *service.SignupService
	// StorageEnabled is false when no database is configured; signup and
	// account routes then answer 501 while field checks keep working.
	StorageEnabled bool

	SignupRateLimit  int
	SignupRateWindow time.Duration
	// TrustProxy keys the signup limiter on X-Forwarded-For instead of the
	// peer address. Only set it behind a proxy that overwrites the header.
	TrustProxy bool
	Now        func() time.Time
}

func NewRouter(opts RouterOpts) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Signup == nil {
		opts.Signup = &service.SignupService{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	api := &api{
		logger:        logger,
		dbPing:        opts.DBPing,
		signupSvc:     opts.Signup,
		signupLimiter: newSignupLimiter(opts.SignupRateLimit, opts.SignupRateWindow),
		trustProxy:    opts.TrustProxy,
		now:           opts.Now,
	}

	publicMux := http.NewServeMux()
	apiMux := http.NewServeMux()

	publicMux.HandleFunc("GET /healthz", api.handleHealthz)

	apiMux.HandleFunc("POST /v1/fields/{field}/check", api.handleFieldCheck)
	if opts.StorageEnabled {
		apiMux.HandleFunc("POST /v1/signup", api.handleSignup)
		apiMux.HandleFunc("GET /v1/accounts/{id}", api.handleAccountGet)
	} else {
		apiMux.HandleFunc("POST /v1/signup", handleNotImplemented)
		apiMux.HandleFunc("GET /v1/accounts/{id}", handleNotImplemented)
	}

	apiHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, pattern := apiMux.Handler(r)
		if pattern == "" {
			handleV1NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})

	root := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/v1/") || r.URL.Path == "/v1" {
			apiHandler.ServeHTTP(w, r)
			return
		}
		publicMux.ServeHTTP(w, r)
	})

	var h http.Handler = root
	h = RequestLogger(logger)(h)
	h = Recoverer(logger, opts.IsProd)(h)
	h = RequestID()(h)
	return h
}

func handleNotImplemented(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, http.StatusNotImplemented, "not_implemented", "not implemented")
}

func handleV1NotFound(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, http.StatusNotFound, "not_found", "not found")
}

type api struct {
	logger *slog.Logger

	dbPing func(context.Context) error

	signupSvc     *service.SignupService
	signupLimiter *signupLimiter
	trustProxy    bool
	now           func() time.Time
}

func (a *api) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if a.dbPing != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()
		if err := a.dbPing(ctx); err != nil {
			requestLogger(r.Context(), a.logger).Warn("health check: db ping failed", "err", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("db down"))
			return
		}
	}

	_, _ = w.Write([]byte("ok"))
}
