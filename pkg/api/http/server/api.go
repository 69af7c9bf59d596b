package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/voidshard/etlmon/pkg/api"
	"github.com/voidshard/etlmon/pkg/api/http/common"
)

const (
	wait = 30 * time.Second
)

type Server struct {
	addr       string
	opts       *Options
	svc        api.API
	log        *zap.SugaredLogger
	validate   *validator.Validate
	limiter    *rate.Limiter
	exit       chan os.Signal
	httpserver *http.Server
}

func NewServer(addr string, opts *Options) *Server {
	if opts == nil {
		opts = &Options{}
	}
	opts.SetDefaults()

	s := &Server{
		addr:     addr,
		opts:     opts,
		log:      opts.Logger,
		validate: newValidator(),
		exit:     make(chan os.Signal, 1),
	}
	if opts.RateLimit > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), opts.Burst)
	}
	return s
}

// Router returns the handler serving svc. ServeForever uses this, tests can
// hand it to httptest directly.
func (s *Server) Router(svc api.API) http.Handler {
	s.svc = svc

	router := mux.NewRouter()
	router.HandleFunc(common.API_HEALTH, s.Health).Methods(http.MethodGet)

	router.HandleFunc(common.API_JOBS, s.listRecent).Methods(http.MethodGet)
	router.HandleFunc(common.API_JOBS_START, s.startExecution).Methods(http.MethodPost)
	router.HandleFunc(common.API_JOBS_FILTER, s.filter).Methods(http.MethodGet)
	router.HandleFunc(common.API_JOBS_STATISTICS, s.statistics).Methods(http.MethodGet)
	router.HandleFunc(common.API_JOBS_FAILED, s.listFailed).Methods(http.MethodGet)

	router.HandleFunc(common.API_JOB_BY_NAME, s.lastExecution).Methods(http.MethodGet)
	router.HandleFunc(common.API_JOB_HISTORY, s.history).Methods(http.MethodGet)
	router.HandleFunc(common.API_JOB_SUCCESS_RATE, s.successRate).Methods(http.MethodGet)

	router.HandleFunc(common.API_EXECUTION, s.getExecution).Methods(http.MethodGet)
	router.HandleFunc(common.API_EXECUTION_FINISH, s.finishExecution).Methods(http.MethodPost)
	router.HandleFunc(common.API_EXECUTION_DETAILS, s.details).Methods(http.MethodGet)
	router.HandleFunc(common.API_EXECUTION_STEPS, s.startStep).Methods(http.MethodPost)
	router.HandleFunc(common.API_STEP_FINISH, s.finishStep).Methods(http.MethodPost)

	router.HandleFunc(common.API_DASHBOARD, s.dashboard).Methods(http.MethodGet)

	if s.limiter != nil {
		s.log.Infow("rate limiting requests", "rate", s.opts.RateLimit, "burst", s.opts.Burst)
		router.Use(rateLimitMiddleware(s.limiter))
	}
	if s.opts.Debug {
		s.log.Debug("debug enabled, adding per-request logging middleware")
		router.Use(loggingMiddleware(s.log))
	}

	// outermost so unmatched routes get an id too
	return requestIDMiddleware(router)
}

func (s *Server) ServeForever(svc api.API) error {
	s.httpserver = &http.Server{
		Handler:      s.Router(svc),
		Addr:         s.addr,
		WriteTimeout: s.opts.WriteTimeout,
		ReadTimeout:  s.opts.ReadTimeout,
	}

	errs := make(chan error, 1)
	go func() {
		s.log.Infow("listening", "addr", s.httpserver.Addr, "tls", s.opts.TLSCert != "")
		var err error
		if s.opts.TLSCert != "" && s.opts.TLSKey != "" {
			err = s.httpserver.ListenAndServeTLS(s.opts.TLSCert, s.opts.TLSKey)
		} else {
			err = s.httpserver.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	signal.Notify(s.exit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(s.exit)

	select {
	case err := <-errs:
		if err != nil {
			return err
		}
	case <-s.exit:
	}

	s.log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()
	return s.httpserver.Shutdown(ctx)
}

func (s *Server) Close() error {
	select {
	case s.exit <- os.Interrupt:
	default:
	}
	return nil
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJson(w, http.StatusOK, &common.HealthResponse{Status: "ok"})
}
