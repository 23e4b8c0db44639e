package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	defaultPort      = "3000"
	defaultStore     = StoreMongo
	defaultMongoURI  = "mongodb://localhost:27017"
	defaultMongoDB   = "bikestore"
	defaultUploadDir = "./uploads"
	defaultPublicDir = "./public"

	defaultTokenURL   = "https://sandbox.safaricom.co.ke/oauth/v1/generate?grant_type=client_credentials"
	defaultSTKPushURL = "https://sandbox.safaricom.co.ke/mpesa/stkpush/v1/processrequest"
	defaultAccountRef = "BikeMarket"
	defaultTxnDesc    = "Bike purchase"
)

// Store backends selectable via the STORE env var.
const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Port      string
	Store     string
	MongoURI  string
	MongoDB   string
	UploadDir string
	PublicDir string
	Mpesa     MpesaConfig
}

// MpesaConfig holds the Daraja API credentials and endpoints.
// Everything is externalized; nothing is compiled in.
type MpesaConfig struct {
	ConsumerKey     string
	ConsumerSecret  string
	ShortCode       string
	Passkey         string
	TokenURL        string
	STKPushURL      string
	CallbackURL     string
	AccountRef      string
	TransactionDesc string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:      getEnv("PORT", defaultPort),
		Store:     strings.ToLower(getEnv("STORE", defaultStore)),
		MongoURI:  getEnv("MONGO_URI", defaultMongoURI),
		MongoDB:   getEnv("MONGO_DB", defaultMongoDB),
		UploadDir: getEnv("UPLOAD_DIR", defaultUploadDir),
		PublicDir: getEnv("PUBLIC_DIR", defaultPublicDir),
		Mpesa: MpesaConfig{
			ConsumerKey:     os.Getenv("MPESA_CONSUMER_KEY"),
			ConsumerSecret:  os.Getenv("MPESA_CONSUMER_SECRET"),
			ShortCode:       os.Getenv("MPESA_SHORTCODE"),
			Passkey:         os.Getenv("MPESA_PASSKEY"),
			TokenURL:        getEnv("MPESA_TOKEN_URL", defaultTokenURL),
			STKPushURL:      getEnv("MPESA_STK_URL", defaultSTKPushURL),
			CallbackURL:     os.Getenv("MPESA_CALLBACK_URL"),
			AccountRef:      getEnv("MPESA_ACCOUNT_REF", defaultAccountRef),
			TransactionDesc: getEnv("MPESA_TRANSACTION_DESC", defaultTxnDesc),
		},
	}

	if cfg.Store != StoreMongo && cfg.Store != StoreMemory {
		return nil, fmt.Errorf("STORE must be %q or %q, got %q", StoreMongo, StoreMemory, cfg.Store)
	}

	return cfg, nil
}

// Configured reports whether the Daraja credentials are present. The payment
// endpoint stays mounted either way; calls without credentials fail upstream.
func (m MpesaConfig) Configured() bool {
	return m.ConsumerKey != "" && m.ConsumerSecret != "" && m.ShortCode != "" && m.Passkey != ""
}

func getEnv(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}
