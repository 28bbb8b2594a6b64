package common

// Version information shared by all commands
const (
	AppVersion = "1.0.0"
)
