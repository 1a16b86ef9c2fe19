package sessions

type StoreConf struct {
	Type string `json:"type"` // "memory" | "redis"
	Host string `json:"host"`
	Port int    `json:"port"`
	PW   string `json:"pw"`
	DB   int    `json:"db"` // optional db number e.g. redis
}
