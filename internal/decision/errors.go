package decision

import "fmt"

// DataIntegrityError marks a required market input as missing or
// malformed (zero ATR/price, short candle series, broken regime
// window, no level at the event price). It always resolves to a
// NO_TRADE record carrying the reason; it is never defaulted away.
type DataIntegrityError struct {
	Reason string
}

func (e *DataIntegrityError) Error() string {
	return "data integrity: " + e.Reason
}

// GateFailure is a named safety gate or order sanity check blocking the
// trade. It is a legitimate NO_TRADE outcome, not a system error.
type GateFailure struct {
	Gate   string
	Detail string
}

func (e *GateFailure) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("gate %s blocked", e.Gate)
	}
	return fmt.Sprintf("gate %s blocked: %s", e.Gate, e.Detail)
}
