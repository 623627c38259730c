package symbol

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalid reports a symbol that failed normalization or strict validation.
var ErrInvalid = errors.New("invalid symbol")

var basePattern = regexp.MustCompile(`^[A-Z0-9]{2,10}$`)

// DefaultQuote is appended when the input carries no quote currency.
const DefaultQuote = "USDT"

// quoteOrder fixes suffix-detection order so parsing stays deterministic.
var quoteOrder = []string{"USDT", "USDC", "BUSD", "FDUSD", "DAI", "EUR"}

// AllowedQuotes is the quote-currency allow-list. Anything else is rejected.
var AllowedQuotes = map[string]struct{}{
	"USDT":  {},
	"USDC":  {},
	"BUSD":  {},
	"FDUSD": {},
	"DAI":   {},
	"EUR":   {},
}

// Symbol is a normalized base/quote pair.
type Symbol struct {
	Base  string
	Quote string
}

// Internal renders the canonical "BASE/QUOTE" form.
func (s Symbol) Internal() string {
	if s.Base == "" || s.Quote == "" {
		return ""
	}
	return s.Base + "/" + s.Quote
}

// Binance renders the concatenated exchange form ("BASEQUOTE").
func (s Symbol) Binance() string {
	if s.Base == "" || s.Quote == "" {
		return ""
	}
	return s.Base + s.Quote
}

// Normalize maps varied input forms (APE, APEUSDT, APE/USDT,
// BINANCE:APEUSDT) to a canonical pair and enforces the strict format:
// base must match ^[A-Z0-9]{2,10}$, quote must be on the allow-list.
// The format check is case-sensitive on purpose: lowercase input is
// rejected, not folded.
func Normalize(raw string) (Symbol, error) {
	s := strings.TrimSpace(raw)
	s = strings.NewReplacer("_", "", "-", "").Replace(s)
	if s == "" {
		return Symbol{}, fmt.Errorf("%w: empty input", ErrInvalid)
	}
	if idx := strings.Index(s, ":"); idx >= 0 {
		s = s[idx+1:]
	}

	var base, quote string
	if strings.Contains(s, "/") {
		parts := strings.Split(s, "/")
		if len(parts) != 2 {
			return Symbol{}, fmt.Errorf("%w: malformed pair %q", ErrInvalid, raw)
		}
		base, quote = parts[0], parts[1]
	} else {
		for _, q := range quoteOrder {
			if strings.HasSuffix(s, q) && len(s) > len(q) {
				base, quote = s[:len(s)-len(q)], q
				break
			}
		}
		if base == "" {
			base, quote = s, DefaultQuote
		}
	}

	if !basePattern.MatchString(base) {
		return Symbol{}, fmt.Errorf("%w: base %q must match [A-Z0-9]{2,10}", ErrInvalid, base)
	}
	if _, ok := AllowedQuotes[quote]; !ok {
		return Symbol{}, fmt.Errorf("%w: quote %q not allowed", ErrInvalid, quote)
	}
	return Symbol{Base: base, Quote: quote}, nil
}
