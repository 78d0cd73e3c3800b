package validator

func ValidateLogFormat(format string) bool {
	validFormats := map[string]bool{
		"json":    true,
		"text":    true,
		"console": true,
	}
	return validFormats[format]
}

func ValidateLogLevel(level string) bool {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	return validLevels[level]
}
