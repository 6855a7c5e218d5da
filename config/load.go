package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

func Load() App {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := App{
		Port:            getenv("APP_PORT", "8080"),
		DatabaseURL:     must("DATABASE_URL"),
		JWTSecret:       getenv("JWT_SECRET", "local_dev_secret"),
		PaystackSecret:  os.Getenv("PAYSTACK_SECRET_KEY"),
		ProviderMode:    getenv("VTU_PROVIDER_MODE", "mock"),
		ProviderBaseURL: os.Getenv("VTU_PROVIDER_BASE_URL"),
		ProviderAPIKey:  os.Getenv("VTU_PROVIDER_API_KEY"),
		SendgridKey:     os.Getenv("SENDGRID_API_KEY"),
		SupportEmail:    getenv("SUPPORT_EMAIL", "support@vtunigeria.com"),
		TopupExpiryCron: getenv("TOPUP_EXPIRY_CRON", "0 */10 * * * *"),
		Env:             getenv("APP_ENV", "dev"),
	}
	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		slog.Error("required env missing", "key", k)
		panic("missing env " + k)
	}
	return v
}
