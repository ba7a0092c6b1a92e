package config

import "os"

func Addr() string {
	if port := os.Getenv("APP_PORT"); port != "" {
		return ":" + port
	}
	return ":8080"
}

func Development() bool {
	return os.Getenv("APP_MODE") == "development"
}
