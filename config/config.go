package config

import "os"

// Port returns the port the HTTP server listens on.
func Port() string {
	port := os.Getenv("PORT")
	if port == "" && os.Getenv("USE_HTTPS") == "true" {
		return "443"
	}
	if port == "" {
		return "8080"
	}
	return port
}

// JWTSecret returns the key session tokens are signed with.
func JWTSecret() []byte {
	return []byte(os.Getenv("KEY"))
}

// YouTubeAPIKey returns the Data API key the video metadata resolver uses.
func YouTubeAPIKey() string {
	return os.Getenv("YOUTUBE_API_KEY")
}

// IsProd reports whether the server runs in release mode.
func IsProd() bool {
	return os.Getenv("PROD") == "true"
}
