package config

// DispatchConfig holds request dispatch configuration
type DispatchConfig struct {
	// PublishStrategy controls how notification fan-out reacts to handler
	// failures: "fail_fast" stops at the first failing handler, "best_effort"
	// runs every handler and reports the collected failures.
	PublishStrategy string `mapstructure:"publish_strategy" validate:"required,oneof=fail_fast best_effort"`
}
