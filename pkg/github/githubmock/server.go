package githubmock

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"slices"
	"sync"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ghqa/issues-qa/internal/models"
)

// Server is an in-process implementation of the issues REST API for one
// repository. It keeps every issue in memory.
type Server struct {
	owner         string
	repo          string
	secret        []byte
	collaborators []string

	mu     sync.Mutex
	issues map[int]*models.Issue
	users  map[string]*models.User
	nextID int64

	engine  *gin.Engine
	server  *http.Server
	baseURL string
	log     *zap.SugaredLogger
}

type Option func(*Server)

// WithCollaborators grants push access to the given logins. The repository
// owner always has it.
func WithCollaborators(logins ...string) Option {
	return func(s *Server) {
		s.collaborators = append(s.collaborators, logins...)
	}
}

// WithSecret sets the HMAC key used to sign tokens.
func WithSecret(secret []byte) Option {
	return func(s *Server) {
		s.secret = secret
	}
}

func New(owner, repo string, opts ...Option) *Server {
	s := &Server{
		owner:  owner,
		repo:   repo,
		secret: []byte(uuid.NewString()),
		issues: make(map[int]*models.Issue),
		users:  make(map[string]*models.User),
		log:    zap.S().Named("githubmock"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.collaborators = append(s.collaborators, owner)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(
		ginzap.Ginzap(zap.L().Named("githubmock"), time.RFC3339, true),
		ginzap.RecoveryWithZap(zap.L().Named("githubmock"), true),
	)
	s.registerRoutes(engine)
	s.engine = engine

	return s
}

// Start listens on addr and serves in the background. Use port 0 for a
// random free port and read it back with URL.
func (s *Server) Start(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}

	s.baseURL = fmt.Sprintf("http://%s", listener.Addr().String())
	s.server = &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		s.log.Infof("github mock server started on %s", s.baseURL)
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Errorf("github mock server error: %v", err)
		}
	}()

	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// URL returns the API root, e.g. http://127.0.0.1:41234.
func (s *Server) URL() string {
	return s.baseURL
}

func (s *Server) Owner() string {
	return s.owner
}

func (s *Server) Repo() string {
	return s.repo
}

// Issues returns a copy of every stored issue ordered by number.
func (s *Server) Issues() []models.Issue {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Issue, 0, len(s.issues))
	for _, issue := range s.issues {
		out = append(out, *issue)
	}
	slices.SortFunc(out, func(a, b models.Issue) int {
		return a.Number - b.Number
	})
	return out
}

// AddIssue stores an issue authored by login as if it had been posted.
func (s *Server) AddIssue(login string, req models.IssueRequest) models.Issue {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.createLocked(s.baseURL, login, createRequest{
		Title:     req.Title,
		Body:      req.Body,
		Assignee:  req.Assignee,
		Assignees: req.Assignees,
		Labels:    req.Labels,
		Milestone: req.Milestone,
	})
}

func (s *Server) isCollaborator(login string) bool {
	return slices.Contains(s.collaborators, login)
}
