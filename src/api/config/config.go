package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/commune-labs/community-gov/src/logging"
)

type Config struct {
	MySQLDSN  string
	RedisURL  string
	JWTSecret string
	Port      string
	LogPath   string
	Debug     bool
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		if def == "" {
			logging.Fatalf("missing env %s", key)
		}
		return def
	}
	return v
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	debug, _ := strconv.ParseBool(getenv("DEBUG", "false"))
	return Config{
		MySQLDSN:  getenv("MYSQL_DSN", "communitygov:communitygov@tcp(127.0.0.1:3306)/communitygov?parseTime=true"),
		RedisURL:  getenv("REDIS_URL", "redis://127.0.0.1:6379/0"),
		JWTSecret: getenv("JWT_SECRET", ""),
		Port:      getenv("PORT", "8080"),
		LogPath:   getenv("LOG_PATH", ""),
		Debug:     debug,
	}
}
