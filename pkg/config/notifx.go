package config

// NotifxConfig configures passcode email delivery.
type NotifxConfig struct {
	// Provider is "ses", "console" or "none". With "none" no delivery channel
	// is configured and passcodes are only surfaced through the dev path.
	Provider    string
	FromAddress string
	FromName    string
	AWSRegion   string
}

func loadNotifxConfig() NotifxConfig {
	return NotifxConfig{
		Provider:    getEnv("NOTIFX_PROVIDER", "console"),
		FromAddress: getEnv("NOTIFX_FROM_ADDRESS", getEnv("SENDER_EMAIL", "noreply@supplierportal.local")),
		FromName:    getEnv("NOTIFX_FROM_NAME", "Supplier Portal"),
		AWSRegion:   getEnv("NOTIFX_AWS_REGION", getEnv("AWS_REGION", "us-east-1")),
	}
}

// HasDeliveryChannel reports whether passcodes are delivered somewhere.
func (n NotifxConfig) HasDeliveryChannel() bool {
	return n.Provider != "" && n.Provider != "none"
}
