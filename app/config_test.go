package app_test

import "homecall/config"

func testConfig(storagePath string) config.Config {
	return config.Config{
		APIBaseURL:        "http://127.0.0.1:0",
		RequestTimeoutSec: 1,
		StoragePath:       storagePath,
		MaxRequestsPerMin: 600,
		RealtimeEnabled:   false,
	}
}
