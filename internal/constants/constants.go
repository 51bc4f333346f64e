package constants

import "time"

var AIConfig = struct {
	DefaultGeminiModel string
	DefaultOpenAIModel string
	Temperature        float32
	RequestTimeout     time.Duration
	ResponsePreview    int
}{
	DefaultGeminiModel: "gemini-2.5-flash",
	DefaultOpenAIModel: "gpt-4.1-mini",
	Temperature:        0.8,              // creative but repeatable variety
	RequestTimeout:     90 * time.Second, // upper bound for one suggestion call
	ResponsePreview:    200,
}

var SuggestionLimits = struct {
	MinHashtags         int
	MinGrowthIdeas      int
	MaxDescriptionRunes int
	MaxGoalsRunes       int
	MaxTrainingRunes    int
}{
	MinHashtags:         10,
	MinGrowthIdeas:      5,
	MaxDescriptionRunes: 4000,
	MaxGoalsRunes:       2000,
	MaxTrainingRunes:    8000,
}

var ProfileConfig = struct {
	FetchDelay    time.Duration
	AvatarBaseURL string
}{
	FetchDelay:    1500 * time.Millisecond,
	AvatarBaseURL: "https://avatar.vercel.sh",
}

var SessionConfig = struct {
	CookieName   string
	TTL          time.Duration
	BusyTimeout  time.Duration
	SweepEvery   time.Duration
	KeyPrefix    string
	MaxTxRetries int
}{
	CookieName:   "sga_session",
	TTL:          60 * time.Minute,
	BusyTimeout:  2 * time.Minute, // busy older than this is treated as abandoned
	SweepEvery:   5 * time.Minute,
	KeyPrefix:    "growth:session:",
	MaxTxRetries: 5,
}

var RedisConfig = struct {
	ReadyTimeout time.Duration
}{
	ReadyTimeout: 5 * time.Second,
}

var ServerConfig = struct {
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
	BuildTimeout      time.Duration
}{
	ReadHeaderTimeout: 10 * time.Second,
	ShutdownTimeout:   10 * time.Second,
	BuildTimeout:      30 * time.Second,
}
