package cmd

type Config struct {
	HTTPPort          string
	Environment       string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSslMode         string
	JWTSecret         string
	RabbitURL         string
	NotificationQueue string
}
