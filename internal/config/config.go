package config

import (
	"github.com/spf13/viper"
)

// Config holds all runtime settings. Values come from environment variables
// with the defaults below; an empty DatabaseURL switches the app to the
// in-memory repositories for local development.
type Config struct {
	AppPort           string
	DatabaseURL       string
	JWTSecret         string
	RazorpayKeyID     string
	RazorpayKeySecret string
	StripeSecretKey   string
	RabbitMQURL       string
}

// Load reads configuration from the environment via Viper.
func Load() *Config {
	viper.SetDefault("APP_PORT", ":5000")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("JWT_SECRET", "dev_jwt_secret")
	viper.SetDefault("RAZORPAY_KEY_ID", "")
	viper.SetDefault("RAZORPAY_KEY_SECRET", "")
	viper.SetDefault("STRIPE_SECRET_KEY", "")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv() // Load environment variables

	return &Config{
		AppPort:           viper.GetString("APP_PORT"),
		DatabaseURL:       viper.GetString("DATABASE_URL"),
		JWTSecret:         viper.GetString("JWT_SECRET"),
		RazorpayKeyID:     viper.GetString("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: viper.GetString("RAZORPAY_KEY_SECRET"),
		StripeSecretKey:   viper.GetString("STRIPE_SECRET_KEY"),
		RabbitMQURL:       viper.GetString("RABBITMQ_URL"),
	}
}
