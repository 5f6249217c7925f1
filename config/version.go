package config

// injected by '-X' flag:
// go build -ldflags "-X github.com/krelay/kwrelay-bot/config.Version=${VERSION}"
var (
	Version   string = "dev"
	BuildTime string = "unknown"
	GitCommit string = "unknown"
)
