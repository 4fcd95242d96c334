// Package challenge calls the external step-up verification provider.
//
// The provider contract is a form POST of the shared secret and the
// client-solved challenge token, answered with a JSON body carrying a
// success flag and an optional confidence score. Only the binary outcome
// is consumed here.
//
// # What this package must NOT do
//
//   - Treat a transport error, timeout, or non-2xx status as a pass.
//     Verification fails closed.
package challenge
