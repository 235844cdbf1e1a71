package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Document store. "firestore" or "mongo".
	StoreBackend string `mapstructure:"STORE_BACKEND"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Firebase.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
	FirebaseProjectID       string `mapstructure:"FIREBASE_PROJECT_ID"`
	FCMAdminTopic           string `mapstructure:"FCM_ADMIN_TOPIC"`
	AdminEmail              string `mapstructure:"ADMIN_EMAIL"`

	// Clinic identity used in outbound messages.
	ClinicName         string        `mapstructure:"CLINIC_NAME"`
	ClinicPhone        string        `mapstructure:"CLINIC_PHONE"`
	ClinicTimezone     string        `mapstructure:"CLINIC_TIMEZONE"`
	AdminPhone         string        `mapstructure:"ADMIN_PHONE"`
	DefaultCountryCode string        `mapstructure:"DEFAULT_COUNTRY_CODE"`
	FreshWindow        time.Duration `mapstructure:"FRESH_WINDOW"`

	// Messaging.
	MessagingFunctionURL  string `mapstructure:"MESSAGING_FUNCTION_URL"`
	MessagingSharedSecret string `mapstructure:"MESSAGING_SHARED_SECRET"`
	MessagingQueue        string `mapstructure:"MESSAGING_QUEUE"`
	TwilioAccountSID      string `mapstructure:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken       string `mapstructure:"TWILIO_AUTH_TOKEN"`
	TwilioWhatsAppFrom    string `mapstructure:"TWILIO_WHATSAPP_FROM"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Cloudinary.
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`
	CloudinaryFolder    string `mapstructure:"CLOUDINARY_FOLDER"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)

	viper.SetDefault("STORE_BACKEND", "firestore")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "clinicdesk")

	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "config/firebase-service-account.json")
	viper.SetDefault("FIREBASE_PROJECT_ID", "")
	viper.SetDefault("FCM_ADMIN_TOPIC", "")
	viper.SetDefault("ADMIN_EMAIL", "")

	viper.SetDefault("CLINIC_NAME", "Dr. Basavaiah Ayurveda Hospital")
	viper.SetDefault("CLINIC_PHONE", "+916281508325")
	viper.SetDefault("CLINIC_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("ADMIN_PHONE", "+916281508325")
	viper.SetDefault("DEFAULT_COUNTRY_CODE", "91")
	viper.SetDefault("FRESH_WINDOW", "5s")

	viper.SetDefault("MESSAGING_FUNCTION_URL", "")
	viper.SetDefault("MESSAGING_SHARED_SECRET", "")
	viper.SetDefault("MESSAGING_QUEUE", "inprocess")
	viper.SetDefault("TWILIO_ACCOUNT_SID", "")
	viper.SetDefault("TWILIO_AUTH_TOKEN", "")
	viper.SetDefault("TWILIO_WHATSAPP_FROM", "")

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)

	viper.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	viper.SetDefault("CLOUDINARY_API_KEY", "")
	viper.SetDefault("CLOUDINARY_API_SECRET", "")
	viper.SetDefault("CLOUDINARY_FOLDER", "clinicdesk")
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// UsesMongo reports whether the document store is MongoDB instead of Firestore.
func UsesMongo() bool {
	return AppConfig.StoreBackend == "mongo"
}
