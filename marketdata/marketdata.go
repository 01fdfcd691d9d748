// Package marketdata is a placeholder for the market-data HTTP
// clients the evolution core's real deployment would sit behind. The
// core never imports this package — it exists only so the repository
// carries the non-core texture of a real deployment that is out of scope,
// and to give github.com/gorilla/mux a home in this module.
package marketdata

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Quote is one priced observation of a symbol.
type Quote struct {
	ID        string    `json:"id"`
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// Client is the interface a caller depends on; Store below is the
// only implementation this module ships (Server exposes a Store over
// HTTP and does not itself implement Client).
type Client interface {
	Quote(symbol string) (Quote, error)
}

// Store is an in-memory symbol/price table a Server serves quotes
// from.
type Store struct {
	mu     sync.RWMutex
	prices map[string]float64
}

// NewStore returns a Store seeded with prices.
func NewStore(prices map[string]float64) *Store {
	s := &Store{prices: make(map[string]float64, len(prices))}
	for symbol, price := range prices {
		s.prices[symbol] = price
	}
	return s
}

// Set updates symbol's price.
func (s *Store) Set(symbol string, price float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prices[symbol] = price
}

// Quote implements Client directly against the in-memory store,
// without a network round trip.
func (s *Store) Quote(symbol string) (Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	price, ok := s.prices[symbol]
	if !ok {
		return Quote{}, ErrUnknownSymbol
	}
	return Quote{ID: uuid.NewString(), Symbol: symbol, Price: price, Timestamp: time.Now()}, nil
}

// ErrUnknownSymbol is returned by Quote for a symbol the store holds
// no price for.
var ErrUnknownSymbol = httpError("marketdata: unknown symbol")

type httpError string

func (e httpError) Error() string { return string(e) }

// Server exposes a Store over HTTP, routed with gorilla/mux. It is a
// demo surface only: GET /quote/{symbol} returns the current quote as
// JSON, or 404 if the symbol is unknown.
type Server struct {
	store *Store
}

// NewServer wraps store in an HTTP handler.
func NewServer(store *Store) *Server {
	return &Server{store: store}
}

// Handler builds the mux.Router for this server.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/quote/{symbol}", s.handleQuote).Methods(http.MethodGet)
	return r
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]
	quote, err := s.store.Quote(symbol)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(quote)
}
