package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/dekarrin/lrgen/laction"
	"github.com/dekarrin/lrgen/lrtoml"
	"github.com/dekarrin/lrgen/parse"
	"github.com/dekarrin/lrgen/table"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// entry is a previously built table kept in memory under the uuid minted
// for it by handleBuildGrammar, alongside the terminal vocabulary needed
// to classify the string tokens a parse request supplies.
type entry struct {
	table     table.Table
	terminals lrtoml.Grammar
}

// Server holds the demo credential and the set of tables built so far.
// There is no persistence layer: a Server that restarts forgets every
// table it built.
type Server struct {
	jwtSecret        []byte
	demoPasswordHash []byte

	mu     sync.RWMutex
	tables map[string]entry
}

// New constructs a Server whose single demo credential is demoPassword,
// signing tokens with jwtSecret. jwtSecret should be random bytes kept
// secret by the operator; it is never derived from demoPassword.
func New(jwtSecret []byte, demoPassword string) (*Server, error) {
	hash, err := hashPassword(demoPassword)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}
	return &Server{
		jwtSecret:        jwtSecret,
		demoPasswordHash: hash,
		tables:           make(map[string]entry),
	}, nil
}

// Router builds the chi mux serving this Server's routes:
//
//	GET  /v1/health      - liveness check, no auth
//	POST /v1/login       - exchange the demo password for a bearer token
//	POST /v1/grammar     - build a table from a posted TOML grammar (auth required)
//	POST /v1/parse/{id}  - drive a built table against posted tokens (auth required)
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(requestID)

	r.Get("/v1/health", s.handleHealth)
	r.Post("/v1/login", s.handleLogin)
	r.Post("/v1/grammar", s.requireAuth(s.handleBuildGrammar))
	r.Post("/v1/parse/{id}", s.requireAuth(s.handleParse))

	return r
}

// requestID stamps every response with an X-Request-Id header holding a
// freshly minted uuid.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("X-Request-Id", uuid.New().String())
		next.ServeHTTP(w, req)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, req *http.Request) {
	OK(map[string]string{"status": "ok"}).writeResponse(w)
}

// LoginRequest is the body of POST /v1/login.
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse is the body returned by a successful POST /v1/login.
type LoginResponse struct {
	Token string `json:"token"`
}

func (s *Server) handleLogin(w http.ResponseWriter, req *http.Request) {
	var body LoginRequest
	if err := readJSON(req, &body); err != nil {
		BadRequest(err.Error()).writeResponse(w)
		return
	}

	tok, err := s.login(body.Password)
	if err != nil {
		Unauthorized("incorrect password").writeResponse(w)
		return
	}
	Created(LoginResponse{Token: tok}).writeResponse(w)
}

// GrammarResponse is the body returned by a successful POST /v1/grammar.
type GrammarResponse struct {
	ID        string   `json:"id"`
	Terminals []string `json:"terminals"`
	States    int      `json:"states"`
}

func (s *Server) handleBuildGrammar(w http.ResponseWriter, req *http.Request) {
	data, err := io.ReadAll(req.Body)
	if err != nil {
		BadRequest("could not read request body").writeResponse(w)
		return
	}

	g, err := lrtoml.Parse(data)
	if err != nil {
		BadRequest(err.Error()).writeResponse(w)
		return
	}

	strategy := req.URL.Query().Get("strategy")
	if strategy == "" {
		strategy = "lalr1"
	}

	resolver := func(c laction.Conflict) (laction.Action, error) {
		return laction.Action{}, fmt.Errorf("unresolved %s", c)
	}

	var tbl table.Table
	switch strategy {
	case "lr1":
		tbl, err = table.LR1Construct(g.Grammar, resolver)
	case "lalr1":
		tbl, err = table.LALR1Construct(g.Grammar, resolver)
	default:
		err = fmt.Errorf("unknown strategy %q (want lr1 or lalr1)", strategy)
	}
	if err != nil {
		BadRequest(err.Error()).writeResponse(w)
		return
	}

	id := uuid.New().String()
	s.mu.Lock()
	s.tables[id] = entry{table: tbl, terminals: g}
	s.mu.Unlock()

	Created(GrammarResponse{ID: id, Terminals: g.Terminals, States: tbl.States()}).writeResponse(w)
}

// ParseRequest is the body of POST /v1/parse/{id}.
type ParseRequest struct {
	Tokens []string `json:"tokens"`
}

// ParseEvent mirrors one parse.Event[string] for JSON transport.
type ParseEvent struct {
	Kind       string `json:"kind"`
	Token      string `json:"token,omitempty"`
	Var        int    `json:"var,omitempty"`
	ChildCount int    `json:"child_count,omitempty"`
	Production int    `json:"production,omitempty"`
}

// ParseResponse is the body returned by POST /v1/parse/{id}.
type ParseResponse struct {
	Accepted bool         `json:"accepted"`
	Events   []ParseEvent `json:"events"`
	Error    string       `json:"error,omitempty"`
}

// tokenList is a parse.TokenSource[string] over an already-split request
// body, the same shape cmd/lrgen's tokenLine drives a table with.
type tokenList struct {
	toks []string
	i    int
}

func (s *tokenList) HasNext() bool { return s.i < len(s.toks) }

func (s *tokenList) Next() (string, error) {
	t := s.toks[s.i]
	s.i++
	return t, nil
}

func (s *Server) handleParse(w http.ResponseWriter, req *http.Request) {
	id := chi.URLParam(req, "id")

	s.mu.RLock()
	e, ok := s.tables[id]
	s.mu.RUnlock()
	if !ok {
		NotFound(fmt.Sprintf("no grammar with id %q", id)).writeResponse(w)
		return
	}

	var body ParseRequest
	if err := readJSON(req, &body); err != nil {
		BadRequest(err.Error()).writeResponse(w)
		return
	}

	for _, tok := range body.Tokens {
		if e.terminals.ClassOf(tok) < 0 {
			BadRequest(fmt.Sprintf("%q is not a declared terminal of this grammar", tok)).writeResponse(w)
			return
		}
	}

	d := parse.New[string](e.table, &tokenList{toks: body.Tokens}, e.terminals.ClassOf)
	var events []ParseEvent
	for {
		ev, more := d.Next()
		if !more {
			break
		}
		events = append(events, ParseEvent{
			Kind:       ev.Kind.String(),
			Token:      ev.Token,
			Var:        ev.Var,
			ChildCount: ev.ChildCount,
			Production: ev.Production,
		})
	}

	if err := d.Err(); err != nil {
		OK(ParseResponse{Accepted: false, Events: events, Error: err.Error()}).writeResponse(w)
		return
	}
	OK(ParseResponse{Accepted: true, Events: events}).writeResponse(w)
}

func readJSON(req *http.Request, dst interface{}) error {
	dec := json.NewDecoder(req.Body)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("malformed request body: %w", err)
	}
	return nil
}
