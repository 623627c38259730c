package config

// Config is the immutable configuration snapshot for the whole process.
// It is loaded once at startup and never re-read mid-cycle.
type Config struct {
	App     AppConfig     `toml:"app"`
	Server  ServerConfig  `toml:"server"`
	Market  MarketConfig  `toml:"market"`
	Store   StoreConfig   `toml:"store"`
	Levels  LevelsConfig  `toml:"levels"`
	Regime  RegimeConfig  `toml:"regime"`
	Scoring ScoringConfig `toml:"scoring"`
	Kevlar  KevlarConfig  `toml:"kevlar"`
	Trading TradingConfig `toml:"trading"`
}

type AppConfig struct {
	Env      string `toml:"env"`
	LogLevel string `toml:"log_level"`
	LogPath  string `toml:"log_path"`
}

type ServerConfig struct {
	Addr          string `toml:"addr"`
	WebhookSecret string `toml:"webhook_secret"`
}

type MarketConfig struct {
	RESTBaseURL        string  `toml:"rest_base_url"`
	HTTPTimeoutSeconds int     `toml:"http_timeout_seconds"`
	Timeframe          string  `toml:"timeframe"`
	CandleLimit        int     `toml:"candle_limit"`
	ReferenceSymbol    string  `toml:"reference_symbol"`
	ATRPeriod          int     `toml:"atr_period"`
	OscillatorPeriod   int     `toml:"oscillator_period"`
	VWAPWindow         int     `toml:"vwap_window"`
	ROCPeriod          int     `toml:"roc_period"`
	OIWindow           int     `toml:"oi_window"`
	OIHotRatio         float64 `toml:"oi_hot_ratio"`
	OIColdRatio        float64 `toml:"oi_cold_ratio"`
}

type StoreConfig struct {
	Path string `toml:"path"`
}

type LevelsConfig struct {
	Window         int     `toml:"window"`
	MergeATR       float64 `toml:"merge_atr"`
	TouchWeight    float64 `toml:"touch_weight"`
	AgeWeight      float64 `toml:"age_weight"`
	GhostThreshold float64 `toml:"ghost_threshold"`
}

type RegimeConfig struct {
	Window     int     `toml:"window"`
	MinSamples int     `toml:"min_samples"`
	ZThreshold float64 `toml:"z_threshold"`
}

type ScoringConfig struct {
	Base                 int     `toml:"base"`
	StrongBonus          int     `toml:"strong_bonus"`
	WeakPenalty          int     `toml:"weak_penalty"`
	ExpansionBonus       int     `toml:"expansion_bonus"`
	CompressionPenalty   int     `toml:"compression_penalty"`
	OscillatorBonus      int     `toml:"oscillator_bonus"`
	HotBonus             int     `toml:"hot_bonus"`
	ColdPenalty          int     `toml:"cold_penalty"`
	Oversold             float64 `toml:"oversold"`
	Overbought           float64 `toml:"overbought"`
	Threshold            int     `toml:"threshold"`
	CompressionThreshold int     `toml:"compression_threshold"`
}

type KevlarConfig struct {
	MaxLevelDistance float64 `toml:"max_level_distance"`
	MomentumBars     int     `toml:"momentum_bars"`
	MomentumLimit    float64 `toml:"momentum_limit"`
	PanicFloor       float64 `toml:"panic_floor"`
	FomoCeiling      float64 `toml:"fomo_ceiling"`
	PanicScoreFloor  int     `toml:"panic_score_floor"`
	FundingTrap      float64 `toml:"funding_trap"`
	AntiTrapDistance float64 `toml:"anti_trap_distance"`
}

type TradingConfig struct {
	Capital       float64 `toml:"capital"`
	RiskFraction  float64 `toml:"risk_fraction"`
	StopATR       float64 `toml:"stop_atr"`
	TP1ATR        float64 `toml:"tp1_atr"`
	TP2ATR        float64 `toml:"tp2_atr"`
	TP3ATR        float64 `toml:"tp3_atr"`
	MinRRR        float64 `toml:"min_rrr"`
	FundingCap    float64 `toml:"funding_cap"`
	FundingMinRRR float64 `toml:"funding_min_rrr"`
	LotStep       float64 `toml:"lot_step"`
}
