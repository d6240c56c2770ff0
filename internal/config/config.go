package config

type AppConfig struct {
	APIPort        string `env:"PORT,required" envDefault:"12222"`
	InternalAPIKey string `env:"INTERNAL_API_KEY,required"`
	PublicURL      string `env:"PUBLIC_URL" envDefault:"http://localhost:12222"`
}

type StoreDatabaseConfig struct {
	Host            string `env:"STORE_POSTGRES_HOST,required"`
	Port            string `env:"STORE_POSTGRES_PORT,required"`
	User            string `env:"STORE_POSTGRES_USER,required"`
	DBName          string `env:"STORE_POSTGRES_DB_NAME,required"`
	Password        string `env:"STORE_POSTGRES_PASSWORD,required"`
	MaxConn         int    `env:"STORE_POSTGRES_DB_MAX_CONN"`
	MaxIdleConn     int    `env:"STORE_POSTGRES_DB_MAX_IDLE_CONN"`
	ConnMaxLifetime int    `env:"STORE_POSTGRES_DB_CONN_MAX_LIFETIME"`
	LogLevel        string `env:"STORE_POSTGRES_LOG_LEVEL" envDefault:"WARN"`
	SSLMode         string `env:"STORE_POSTGRES_SSL_MODE"`
}

type WHMCSConfig struct {
	Url          string `env:"WHMCS_API_URL" envDefault:"https://billing.ruachost.com/includes/api.php"`
	Identifier   string `env:"WHMCS_API_IDENTIFIER"`
	Secret       string `env:"WHMCS_API_SECRET"`
	AccessKey    string `env:"WHMCS_API_ACCESS_KEY"`
	ResponseType string `env:"WHMCS_API_RESPONSE_TYPE" envDefault:"json"`
}

type PaystackConfig struct {
	Url           string `env:"PAYSTACK_API_URL" envDefault:"https://api.paystack.co"`
	SecretKey     string `env:"PAYSTACK_SECRET_KEY"`
	WebhookSecret string `env:"PAYSTACK_WEBHOOK_SECRET"`
	// merchant account only supports Nigerian Naira
	Currency string `env:"PAYSTACK_CURRENCY" envDefault:"NGN"`
}

type PlatformConfig struct {
	Nameserver1 string `env:"PLATFORM_NAMESERVER_1" envDefault:"nsa.ruachost.com"`
	Nameserver2 string `env:"PLATFORM_NAMESERVER_2" envDefault:"nsb.ruachost.com"`
	IPAddress   string `env:"PLATFORM_IP_ADDRESS" envDefault:"185.199.108.153"`
	CDNEndpoint string `env:"PLATFORM_CDN_ENDPOINT" envDefault:"cdn.ruachost.com"`
	RootDomain  string `env:"PLATFORM_ROOT_DOMAIN" envDefault:"ruachost.com"`
}

func (c *PlatformConfig) Nameservers() []string {
	return []string{c.Nameserver1, c.Nameserver2}
}

type ChallengeConfig struct {
	Secret string `env:"CHALLENGE_SECRET,required"`
}

type DNSConfig struct {
	ResolverURL string `env:"DNS_RESOLVER_URL" envDefault:"https://dns.google/resolve"`
	TimeoutSec  int    `env:"DNS_RESOLVER_TIMEOUT_SEC" envDefault:"10"`
}
