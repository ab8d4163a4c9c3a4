package otpinfra

import "github.com/Abraxas-365/supplierportal/pkg/errx"

var storeErrors = errx.NewRegistry("OTP_STORE")

var (
	ErrPut       = storeErrors.Register("PUT", errx.TypeExternal, 500, "Passcode store write failed")
	ErrGet       = storeErrors.Register("GET", errx.TypeExternal, 500, "Passcode store read failed")
	ErrDelete    = storeErrors.Register("DELETE", errx.TypeExternal, 500, "Passcode store delete failed")
	ErrMarshal   = storeErrors.Register("MARSHAL", errx.TypeInternal, 500, "Failed to marshal passcode record")
	ErrUnmarshal = storeErrors.Register("UNMARSHAL", errx.TypeInternal, 500, "Failed to unmarshal passcode record")
)
