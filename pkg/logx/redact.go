package logx

import "strings"

const redacted = "[REDACTED]"

// sensitiveKeys never reach the output in clear text. Passcodes and session
// tokens are bearer secrets.
var sensitiveKeys = map[string]struct{}{
	"otp":           {},
	"dev_otp":       {},
	"passcode":      {},
	"token":         {},
	"authorization": {},
	"secret":        {},
	"password":      {},
}

func isSensitive(key string) bool {
	_, ok := sensitiveKeys[strings.ToLower(key)]
	return ok
}

func redact(fields Fields) Fields {
	if len(fields) == 0 {
		return fields
	}
	out := make(Fields, len(fields))
	for k, v := range fields {
		if isSensitive(k) {
			v = redacted
		}
		out[k] = v
	}
	return out
}
