// Package logger builds log/slog loggers for the rule builder and its tools
// and provides attribute helpers with stable keys.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(os.Getenv("APP_ENV"), "rulecheck"),
//	    logger.WithContextValue("locale", localeKey{}),
//	)
//	log.Warn("unknown rule skipped",
//	    logger.Component("validator"),
//	    logger.Attribute("email"),
//	    logger.RuleToken("emial"),
//	)
//
// Development loggers write text at debug level; production and staging
// loggers write JSON at info level. Context extractors registered with
// WithContextExtractors or WithContextValue are evaluated on every record.
package logger
