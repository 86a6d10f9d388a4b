package config

import (
	"os"
)

// Environment represents the current runtime environment.
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	Production  Environment = "production"
)

// GetEnvironment determines the current environment.
func GetEnvironment() Environment {
	switch env := os.Getenv("ENV"); env {
	case "production":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

// IsDevelopment returns true if the current environment is development.
func IsDevelopment() bool {
	return GetEnvironment() == Development
}

// IsTest returns true if the current environment is test.
func IsTest() bool {
	return GetEnvironment() == Test
}

// IsProduction returns true if the current environment is production.
func IsProduction() bool {
	return GetEnvironment() == Production
}
