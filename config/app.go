package config

type App struct {
	Port            string `env:"APP_PORT" default:"8080"`
	DatabaseURL     string `env:"DATABASE_URL,required"`
	JWTSecret       string `env:"JWT_SECRET,required"`
	PaystackSecret  string `env:"PAYSTACK_SECRET_KEY"`
	ProviderMode    string `env:"VTU_PROVIDER_MODE" default:"mock"`
	ProviderBaseURL string `env:"VTU_PROVIDER_BASE_URL"`
	ProviderAPIKey  string `env:"VTU_PROVIDER_API_KEY"`
	SendgridKey     string `env:"SENDGRID_API_KEY"`
	SupportEmail    string `env:"SUPPORT_EMAIL" default:"support@vtunigeria.com"`
	TopupExpiryCron string `env:"TOPUP_EXPIRY_CRON" default:"0 */10 * * * *"`
	Env             string `env:"APP_ENV" default:"dev"`
}
