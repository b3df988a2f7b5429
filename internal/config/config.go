package config

import "time"

type Config struct {
	BaseURL  string
	HttpPort int
	TLS      struct {
		CertFile string
		KeyFile  string
	}
	Db struct {
		Dsn         string
		Automigrate bool
	}
	Jwt struct {
		SecretKey string
	}
	Session struct {
		CookieName string
		TTL        time.Duration
		Secure     bool
	}
	Auth struct {
		BcryptCost int
		// LegacyPlaintextSignin lets /user/signin accept passwords stored without hashing.
		LegacyPlaintextSignin bool
	}
	RateLimit struct {
		Enabled bool
		RPS     float64
		Burst   int
	}
	Cors struct {
		AllowedOrigins []string
	}
	Redis struct {
		Addr string
		DB   int
	}
	Notifications struct {
		Email string
	}
	Smtp struct {
		Host     string
		Port     int
		Username string
		Password string
		From     string
	}
	FileUploader struct {
		CloudName string
		ApiKey    string
		ApiSecret string
	}
	KafkaServers string
}
