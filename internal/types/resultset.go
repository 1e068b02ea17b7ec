package types

// ResultSet maps ticker symbols to their fetched series, preserving insertion
// order. Only successful fetches are added; failed tickers are absent.
type ResultSet struct {
	tickers []string
	series  map[string]*Series
}

// NewResultSet creates an empty ResultSet.
func NewResultSet() *ResultSet {
	return &ResultSet{
		tickers: nil,
		series:  make(map[string]*Series),
	}
}

// Add inserts a series for the given ticker. Re-adding a ticker replaces its
// series but keeps the original insertion position.
func (r *ResultSet) Add(ticker string, s *Series) {
	if _, exists := r.series[ticker]; !exists {
		r.tickers = append(r.tickers, ticker)
	}

	r.series[ticker] = s
}

// Get returns the series for the given ticker, if present.
func (r *ResultSet) Get(ticker string) (*Series, bool) {
	s, ok := r.series[ticker]

	return s, ok
}

// Tickers returns the tickers in insertion order.
func (r *ResultSet) Tickers() []string {
	out := make([]string, len(r.tickers))
	copy(out, r.tickers)

	return out
}

// Len returns the number of tickers in the result set.
func (r *ResultSet) Len() int {
	return len(r.tickers)
}
