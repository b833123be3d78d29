// Package constants holds shared domain-level constant values.
package constants

const (
	// PubSubProviderLocal selects the local HTTP publisher that mimics
	// Pub/Sub push delivery for development.
	PubSubProviderLocal = "local"
	// PubSubProviderGoogle selects the Google Cloud Pub/Sub publisher.
	PubSubProviderGoogle = "google"
)

const (
	// EnvDevelop marks a local development deployment. Push authentication
	// is skipped in this environment.
	EnvDevelop = "develop"
)
