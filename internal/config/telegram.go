package config

type Telegram struct {
	APIID       int    `env:"TG_API_ID" json:"apiId"`
	APIHash     string `env:"TG_API_HASH" json:"apiHash"`
	Phone       string `env:"TG_PHONE" json:"phone"`
	Password    string `env:"TG_PASSWORD" json:"password"`
	SessionPath string `env:"TG_SESSION_PATH" envDefault:"data/session.json" json:"sessionPath"`
}
