package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"restrict_ip/internal/config"
	"restrict_ip/internal/dataType"
	"restrict_ip/internal/engine"
	"restrict_ip/internal/metrics"
	"restrict_ip/internal/utils"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const sessionBuckets = 64

// Server answers auth subrequests and serves the denial page
type Server struct {
	cfg      *config.MainConfig
	policies *config.PolicyStore
	engine   *engine.Engine
	sessions *dataType.SessionStore
	logx     *utils.LogxManager
	logger   *zap.Logger
	metrics  *metrics.Metrics
	http     *http.Server
}

func NewServer(cfg *config.MainConfig, policies *config.PolicyStore, logger *zap.Logger, m *metrics.Metrics) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		cfg:      cfg,
		policies: policies,
		engine:   engine.New(logger.Named("engine"), m),
		sessions: dataType.NewSessionStore(sessionBuckets, cfg.SessionTTL),
		logx:     utils.NewManager(cfg.LogPath),
		logger:   logger,
		metrics:  m,
	}
}

func (s *Server) Sessions() *dataType.SessionStore {
	return s.sessions
}

// Router returns the HTTP router
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get(s.cfg.WebPath+"/access_denied", s.handleAccessDenied)
	r.Get(s.cfg.WebPath+"/health_check", s.handleHealthCheck)
	if s.metrics != nil {
		r.Method(http.MethodGet, s.cfg.WebPath+"/metrics", s.metrics.Handler())
	}

	// everything else is an auth check for the request described by the headers
	r.HandleFunc("/*", s.handleCheck)

	return r
}

// ListenAndServe starts the HTTP server and blocks until it stops
func (s *Server) ListenAndServe() error {
	s.http = &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("HTTP server listening", zap.String("port", s.cfg.Port))
	err := s.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	defer s.logx.Sync()
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	reqData := processRequestData(s.cfg, r)

	newSession := false
	if reqData.SessionID == "" {
		reqData.SessionID = newSessionID()
		newSession = true
	}

	decision := s.engine.Evaluate(s.policies.Load(), reqData, s.sessions.Marker(reqData.SessionID))
	CheckMain(w, reqData, decision, newSession, s.cfg, s.logx)
}

func processRequestData(cfg *config.MainConfig, r *http.Request) dataType.RequestContext {

	var clientIP string
	for _, headerName := range cfg.ConnectingIPHeaders {
		if ipVal := r.Header.Get(headerName); ipVal != "" {
			if strings.Contains(ipVal, ",") {
				parts := strings.Split(ipVal, ",")
				ipVal = parts[0]
			}
			clientIP = strings.TrimSpace(ipVal)
			break
		}
	}

	if clientIP == "" {
		remoteAddr := r.RemoteAddr
		ipStr, _, err := net.SplitHostPort(remoteAddr)
		if err != nil {
			clientIP = remoteAddr
		} else {
			clientIP = ipStr
		}
	}

	var clientURI string
	for _, headerName := range cfg.ConnectingURIHeaders {
		if uriVal := r.Header.Get(headerName); uriVal != "" {
			clientURI = uriVal
			break
		}
	}
	if clientURI == "" {
		clientURI = r.RequestURI
	}

	var clientHost string
	for _, headerName := range cfg.ConnectingHostHeaders {
		if hostVal := r.Header.Get(headerName); hostVal != "" {
			clientHost = hostVal
			break
		}
	}
	if clientHost == "" {
		clientHost = r.Host
	}

	bypass := false
	for _, headerName := range cfg.ConnectingBypassHeaders {
		if headerTrue(r.Header.Get(headerName)) {
			bypass = true
			break
		}
	}

	var sessionID string
	if cookie, err := r.Cookie(cfg.SessionCookie); err == nil {
		sessionID = cookie.Value
	}

	return dataType.RequestContext{
		ClientIP:            clientIP,
		Path:                utils.NormalizePath(clientURI),
		HasBypassCapability: bypass,
		Host:                clientHost,
		UserAgent:           r.UserAgent(),
		SessionID:           sessionID,
	}
}

func headerTrue(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
