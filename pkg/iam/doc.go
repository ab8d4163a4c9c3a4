// Package iam (Identity and Access Management) provides passwordless supplier
// login for the portal.
//
// # Overview
//
//   - iam/otp         : passcode domain: identity normalization, code
//     generation, records, error taxonomy, ports
//   - iam/otp/otpsrv  : issuer and verifier (RequestCode, VerifyCode)
//   - iam/otp/otpinfra: Redis and in-memory passcode stores, bcrypt code
//     hashing, email delivery through notifx
//   - iam/otp/otpapi  : HTTP handlers (POST /sendOTP, POST /verifyOTP)
//   - iam/auth        : signed session credential (HS256 JWT), fiber
//     middleware, audit port
//   - iam/iamcontainer: composition of the above
//
// # Flow
//
//	POST /sendOTP   {email}        → passcode stored (10 min) and emailed
//	POST /verifyOTP {email, code}  → passcode consumed, session token issued (8 h)
//	GET  /getSupplierData          → Authorization: Bearer <token>
//
// Identities are lowercased once at entry. At most one passcode is outstanding
// per identity; requesting a new one invalidates the previous. A wrong code
// leaves the passcode in place until it expires; a correct code consumes it
// atomically (compare-and-delete) so it can be used exactly once.
//
// # Session credential
//
// The session token is a self-contained JWT signed with SESSION_SECRET and
// carrying {email, accountId, role}. The secret is mandatory configuration and
// must be identical across all instances; the process refuses to start
// without it. Protected routes read the bound account from the token and
// scope every downstream read to it:
//
//	api := app.Group("/", container.AuthMiddleware.Authenticate())
//	api.Get("/getSupplierData", handler)
//
//	authCtx, ok := auth.GetAuthContext(c)
//	supplierRepo.FindByAccount(ctx, authCtx.AccountID)
//
// # Error codes
//
//	OTP_INVALID_IDENTITY     400
//	OTP_MALFORMED_REQUEST    400
//	OTP_ACCOUNT_NOT_FOUND    404
//	OTP_NO_OUTSTANDING_CODE  401
//	OTP_CODE_EXPIRED         401
//	OTP_CODE_MISMATCH        401
//	AUTH_INVALID_SIGNATURE   401
//	AUTH_SESSION_EXPIRED     401
//	IAM_UNAUTHORIZED         401
package iam
