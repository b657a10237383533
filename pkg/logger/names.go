package logger

const (
	Main       = "main"
	Config     = "config"
	Southbound = "southbound"
	Listener   = "listener"
	Handler    = "handler"
	Exporter   = "exporter"
)
