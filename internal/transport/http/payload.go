package transporthttp

import (
	"encoding/json"
	"fmt"
	"strings"

	"marketlens/internal/market"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tidwall/gjson"
)

// payloadSchema is the webhook contract. TradingView templating tends
// to stringify numbers, so numeric fields accept both forms here and
// are coerced after validation.
const payloadSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["event", "symbol", "tf", "bar_time", "level"],
  "properties": {
    "event":     {"enum": ["SUPPORT_TEST", "RESISTANCE_TEST"]},
    "symbol":    {"type": "string", "minLength": 1},
    "tf":        {"type": "string", "minLength": 1},
    "bar_time":  {"type": ["integer", "string"]},
    "level":     {"type": ["number", "string"]},
    "zone_half": {"type": ["number", "string"]}
  }
}`

var compiledSchema = jsonschema.MustCompileString("payload.json", payloadSchema)

// ParsePayload validates the raw webhook body against the schema and
// coerces it into a SignalEvent. Numeric strings are accepted; anything
// else fails before the pipeline sees it.
func ParsePayload(raw []byte) (market.SignalEvent, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return market.SignalEvent{}, fmt.Errorf("empty payload")
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return market.SignalEvent{}, fmt.Errorf("payload is not valid json: %w", err)
	}
	if err := compiledSchema.Validate(doc); err != nil {
		return market.SignalEvent{}, fmt.Errorf("payload schema: %w", err)
	}

	g := gjson.ParseBytes(raw)
	return market.SignalEvent{
		Symbol:    g.Get("symbol").String(),
		Timeframe: g.Get("tf").String(),
		BarTime:   g.Get("bar_time").Int(),
		EventType: market.EventType(g.Get("event").String()),
		Level:     g.Get("level").Float(),
		ZoneHalf:  g.Get("zone_half").Float(),
	}, nil
}
