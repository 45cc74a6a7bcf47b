package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database        DatabaseConfig
	Redis           RedisConfig
	CORS            CORSConfig
	Log             LogConfig
	Academics       AcademicsConfig
	Analytics       AnalyticsConfig
	Recommendations RecommendationsConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	Enabled  bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// AcademicsConfig names the thresholds and pacing constants used by the
// record aggregator and degree-progress calculator. Fixed institutional
// policy gets defaults here rather than inline literals.
type AcademicsConfig struct {
	DeansListGPA          float64
	HonorRollGPA          float64
	ProbationGPA          float64
	AvgCreditsPerSemester int
	SemesterMonths        int
	HoursPerCredit        float64
}

// AnalyticsConfig tunes the learning-analytics pipeline. The trend deadband
// and burnout cutoffs are heuristics with no validated citation; they are
// surfaced here so they can be tuned without a code change.
type AnalyticsConfig struct {
	TrendDeadband          float64
	HighLoadDailyHours     float64
	ModerateLoadDailyHours float64
	HighRiskFocusScore     int
	ModerateRiskFocusScore int
	EffectiveEfficiencyMin int
	CacheTTL               time.Duration
}

// RecommendationsConfig bounds recommendation synthesis.
type RecommendationsConfig struct {
	MaxSubjectFocus int
	MaxTotal        int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
		Enabled:  v.GetBool("REDIS_ENABLED"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Academics = AcademicsConfig{
		DeansListGPA:          v.GetFloat64("ACADEMICS_DEANS_LIST_GPA"),
		HonorRollGPA:          v.GetFloat64("ACADEMICS_HONOR_ROLL_GPA"),
		ProbationGPA:          v.GetFloat64("ACADEMICS_PROBATION_GPA"),
		AvgCreditsPerSemester: v.GetInt("ACADEMICS_AVG_CREDITS_PER_SEMESTER"),
		SemesterMonths:        v.GetInt("ACADEMICS_SEMESTER_MONTHS"),
		HoursPerCredit:        v.GetFloat64("ACADEMICS_HOURS_PER_CREDIT"),
	}

	cfg.Analytics = AnalyticsConfig{
		TrendDeadband:          v.GetFloat64("ANALYTICS_TREND_DEADBAND"),
		HighLoadDailyHours:     v.GetFloat64("ANALYTICS_HIGH_LOAD_DAILY_HOURS"),
		ModerateLoadDailyHours: v.GetFloat64("ANALYTICS_MODERATE_LOAD_DAILY_HOURS"),
		HighRiskFocusScore:     v.GetInt("ANALYTICS_HIGH_RISK_FOCUS_SCORE"),
		ModerateRiskFocusScore: v.GetInt("ANALYTICS_MODERATE_RISK_FOCUS_SCORE"),
		EffectiveEfficiencyMin: v.GetInt("ANALYTICS_EFFECTIVE_EFFICIENCY_MIN"),
		CacheTTL:               parseDuration(v.GetString("ANALYTICS_CACHE_TTL"), 10*time.Minute),
	}

	cfg.Recommendations = RecommendationsConfig{
		MaxSubjectFocus: v.GetInt("RECOMMENDATIONS_MAX_SUBJECT_FOCUS"),
		MaxTotal:        v.GetInt("RECOMMENDATIONS_MAX_TOTAL"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "uni_portal")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_ENABLED", false)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ACADEMICS_DEANS_LIST_GPA", 3.7)
	v.SetDefault("ACADEMICS_HONOR_ROLL_GPA", 3.5)
	v.SetDefault("ACADEMICS_PROBATION_GPA", 2.0)
	v.SetDefault("ACADEMICS_AVG_CREDITS_PER_SEMESTER", 15)
	v.SetDefault("ACADEMICS_SEMESTER_MONTHS", 6)
	v.SetDefault("ACADEMICS_HOURS_PER_CREDIT", 2.0)

	v.SetDefault("ANALYTICS_TREND_DEADBAND", 0.3)
	v.SetDefault("ANALYTICS_HIGH_LOAD_DAILY_HOURS", 8.0)
	v.SetDefault("ANALYTICS_MODERATE_LOAD_DAILY_HOURS", 6.0)
	v.SetDefault("ANALYTICS_HIGH_RISK_FOCUS_SCORE", 60)
	v.SetDefault("ANALYTICS_MODERATE_RISK_FOCUS_SCORE", 70)
	v.SetDefault("ANALYTICS_EFFECTIVE_EFFICIENCY_MIN", 4)
	v.SetDefault("ANALYTICS_CACHE_TTL", "10m")

	v.SetDefault("RECOMMENDATIONS_MAX_SUBJECT_FOCUS", 2)
	v.SetDefault("RECOMMENDATIONS_MAX_TOTAL", 6)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
