package config

var DefaultConfig Config

func init() {
	DefaultConfig = Config{
		PlayerColor:  "white",
		Bot:          "smart",
		ReplyDelayMS: 250,
		SafeRetreat:  false,
		Frontend:     "gui",
		LogLevel:     "info",
	}
}
