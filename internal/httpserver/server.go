// HTTP server wiring for the round API.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Round endpoints: POST /round/new, POST /round/guess, GET /round.
//   - Round tokens: HS256 JWTs naming the round they grant access to.
//
// Notes:
//   - Rounds live in a store.Store; every guess runs inside Store.Update so a
//     round is only touched by one request at a time.
//   - The answer is only disclosed once a round is finished.

package httpserver

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/termle/internal/daily"
	"github.com/robalobadob/termle/internal/game"
	"github.com/robalobadob/termle/internal/store"
	"github.com/robalobadob/termle/internal/words"
)

// Options configures a Server.
type Options struct {
	Secret       []byte        // HS256 key for round tokens
	TokenTTL     time.Duration // token lifetime; rounds older than this are swept
	DailySalt    string        // key for the daily word index
	ClientOrigin string        // allowed CORS origin
	Scorer       game.Scorer   // nil means game.Evaluate
	Now          func() time.Time
}

// Server bundles router, round store and word source.
type Server struct {
	r     *chi.Mux
	store store.Store
	words *words.Source
	opts  Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, src *words.Source, opts Options) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	s := &Server{r: chi.NewRouter(), store: st, words: src, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(cors(opts.ClientOrigin))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"termle","endpoints":["/health","POST /round/new","POST /round/guess","GET /round"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		a, g := s.words.Stats()
		_ = json.NewEncoder(w).Encode(map[string]int{"answers": a, "allowed": g})
	})

	s.r.Post("/round/new", s.handleNewRound)
	s.r.With(s.requireRound()).Post("/round/guess", s.handleGuess)
	s.r.With(s.requireRound()).Get("/round", s.handleState)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start serves HTTP on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// writeJSON writes v as a JSON body with status code.
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeJSONError writes {"error": msg} with status code.
func writeJSONError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------ ROUNDS -------------------------------------

// newRoundReq/Res payloads for POST /round/new.
type newRoundReq struct {
	Daily bool `json:"daily"`
}
type newRoundRes struct {
	RoundID   string    `json:"roundId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// handleNewRound creates a round, stores it and returns its bearer token.
// An empty body starts a random round.
func (s *Server) handleNewRound(w http.ResponseWriter, r *http.Request) {
	var req newRoundReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	now := s.opts.Now()
	if n := s.store.Sweep(r.Context(), now.Add(-s.opts.TokenTTL)); n > 0 {
		log.Debug().Int("rounds", n).Msg("swept expired rounds")
	}

	answer := ""
	if req.Daily {
		answer = daily.Answer(now, s.opts.DailySalt, s.words)
	}
	g, err := game.New(s.words, answer, game.WithScorer(s.opts.Scorer))
	if err != nil {
		log.Error().Err(err).Msg("new round")
		writeJSONError(w, http.StatusInternalServerError, "new_round_failed")
		return
	}

	id := genID()
	if err := s.store.Save(r.Context(), id, g); err != nil {
		log.Error().Err(err).Msg("save round")
		writeJSONError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, exp, err := s.signRoundToken(id, now)
	if err != nil {
		log.Error().Err(err).Msg("sign round token")
		writeJSONError(w, http.StatusInternalServerError, "sign_failed")
		return
	}

	log.Info().Str("roundId", id).Bool("daily", req.Daily).Msg("round started")
	_ = json.NewEncoder(w).Encode(newRoundRes{RoundID: id, Token: tok, ExpiresAt: exp})
}

// guessReq payload for POST /round/guess.
type guessReq struct {
	Guess string `json:"guess"`
}

// roundRes is the round view shared by /round/guess and /round.
type roundRes struct {
	Marks    *game.Marks               `json:"marks,omitempty"`
	State    game.State                `json:"state"`
	Attempts int                       `json:"attempts"`
	Guesses  []string                  `json:"guesses"`
	Keyboard map[string]game.KeyStatus `json:"keyboard"`
	Answer   string                    `json:"answer,omitempty"`
}

// viewOf snapshots a round for the client.
func viewOf(g *game.Round) roundRes {
	out := roundRes{
		State:    g.Outcome().State,
		Attempts: g.Outcome().Attempts,
		Guesses:  []string{},
		Keyboard: make(map[string]game.KeyStatus, 26),
	}
	for _, a := range g.Attempts() {
		out.Guesses = append(out.Guesses, a.Guess)
	}
	kb := g.Keyboard()
	for c := byte('A'); c <= 'Z'; c++ {
		out.Keyboard[string(c)] = kb.Status(c)
	}
	if g.Outcome().Finished() {
		out.Answer = g.Answer()
	}
	return out
}

// handleGuess applies a guess to the caller's round.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad_json")
		return
	}
	id := roundID(r)

	var res roundRes
	err := s.store.Update(r.Context(), id, func(g *game.Round) error {
		upd, err := g.SubmitGuess(req.Guess)
		if err != nil {
			return err
		}
		res = viewOf(g)
		res.Marks = &upd.Attempt.Marks
		return nil
	})
	if err != nil {
		writeRoundError(w, id, err)
		return
	}

	if res.State != game.StatePlaying {
		log.Info().Str("roundId", id).Stringer("state", res.State).Int("attempts", res.Attempts).Msg("round finished")
	}
	_ = json.NewEncoder(w).Encode(res)
}

// handleState returns the caller's round without changing it.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	id := roundID(r)
	var res roundRes
	err := s.store.View(r.Context(), id, func(g *game.Round) error {
		res = viewOf(g)
		return nil
	})
	if err != nil {
		writeRoundError(w, id, err)
		return
	}
	_ = json.NewEncoder(w).Encode(res)
}

// writeRoundError maps store and rejection errors onto HTTP statuses.
func writeRoundError(w http.ResponseWriter, id string, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, game.ErrRoundFinished):
		writeJSONError(w, http.StatusGone, "round_finished")
	case errors.Is(err, game.ErrAlreadyGuessed):
		writeJSONError(w, http.StatusConflict, "already_guessed")
	case errors.Is(err, game.ErrInvalidWord):
		writeJSONError(w, http.StatusUnprocessableEntity, "invalid_word")
	default:
		log.Warn().Err(err).Str("roundId", id).Msg("round request failed")
		writeJSONError(w, http.StatusInternalServerError, "internal")
	}
}

// genID creates a 22‑char URL‑safe, crypto‑random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
