package notifx

// SendOptions are per-message provider settings
type SendOptions struct {
	Tags map[string]string
	// ConfigID names a provider-side configuration set (SES configuration set)
	ConfigID string
}

type Option func(*SendOptions)

// WithTags merges tags into the message metadata. Later values win.
func WithTags(tags map[string]string) Option {
	return func(o *SendOptions) {
		if o.Tags == nil {
			o.Tags = make(map[string]string, len(tags))
		}
		for k, v := range tags {
			o.Tags[k] = v
		}
	}
}

func WithTag(key, value string) Option {
	return WithTags(map[string]string{key: value})
}

func WithConfigID(id string) Option {
	return func(o *SendOptions) { o.ConfigID = id }
}

// ApplySendOptions resolves opts for providers
func ApplySendOptions(opts []Option) SendOptions {
	var so SendOptions
	for _, opt := range opts {
		opt(&so)
	}
	return so
}
