package normalize

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/payops-dev/payoutconv/internal/model"
)

// Rounding selects the rule applied where a provider requires amounts
// rounded to a fixed number of decimal places.
type Rounding int

const (
	// HalfEven is banker's rounding, the default.
	HalfEven Rounding = iota
	// HalfUp rounds half away from zero.
	HalfUp
)

// ParseRounding parses a rounding mode name from configuration.
func ParseRounding(s string) (Rounding, error) {
	switch s {
	case "", "half-even":
		return HalfEven, nil
	case "half-up":
		return HalfUp, nil
	}
	return 0, fmt.Errorf("unsupported rounding mode %q (want half-even or half-up)", s)
}

// Apply rounds d to the given number of decimal places.
func (r Rounding) Apply(d decimal.Decimal, places int32) decimal.Decimal {
	if r == HalfUp {
		return d.Round(places)
	}
	return d.RoundBank(places)
}

// Normalizer converts one raw ads payout transaction into the record
// shape the settlement tool consumes.
type Normalizer interface {
	Normalize(tx model.AdsTransaction) (model.SettlementRecord, error)
	Provider() model.Provider
}

// Registry holds normalizers keyed by provider.
type Registry struct {
	normalizers map[model.Provider]Normalizer
}

// NewRegistry creates an empty normalizer registry.
func NewRegistry() *Registry {
	return &Registry{normalizers: make(map[model.Provider]Normalizer)}
}

// Register adds a normalizer. Panics on duplicate provider.
func (r *Registry) Register(n Normalizer) {
	key := n.Provider()
	if _, ok := r.normalizers[key]; ok {
		panic("duplicate normalizer for provider: " + string(key))
	}
	r.normalizers[key] = n
}

// Get returns the normalizer for provider, or nil.
func (r *Registry) Get(p model.Provider) Normalizer {
	return r.normalizers[p]
}

// DefaultRegistry returns a registry with all built-in normalizers.
func DefaultRegistry(rounding Rounding) *Registry {
	r := NewRegistry()
	r.Register(&UpholdNormalizer{})
	r.Register(&BitflyerNormalizer{Rounding: rounding})
	r.Register(&GeminiNormalizer{})
	return r
}

// publisherID extracts the id portion of a publisher channel value,
// which has the form "<kind>:<id>".
func publisherID(publisher string) (string, error) {
	_, id, ok := strings.Cut(publisher, ":")
	if !ok || id == "" {
		return "", fmt.Errorf("publisher %q has no id after kind prefix", publisher)
	}
	return id, nil
}
