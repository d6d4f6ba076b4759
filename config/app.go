package config

type App struct {
	Port           string `env:"APP_PORT" default:"8080"`
	DatabaseURL    string `env:"DATABASE_URL,required"`
	JWTSecret      string `env:"JWT_SECRET,required"`
	MailAPIURL     string `env:"MAIL_API_URL"`
	MailAPIKey     string `env:"MAIL_API_KEY"`
	LoanPeriodDays int    `env:"LOAN_PERIOD_DAYS" default:"14"`
	Env            string `env:"APP_ENV" default:"dev"`
}
