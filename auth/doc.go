// Package auth implements the client authentication flows: login,
// register, verify and logout.
//
// Flows are the only writers of the session store apart from the HTTP
// pipeline's expiry handler. A login that returns a token stores the
// token and user profile as one update, so the session is either fully
// present or absent:
//
//	flows := auth.New(client, store)
//	res, err := flows.Login(ctx, auth.Credentials{Username: "u", Password: "p"})
//	...
//	_ = flows.Logout(ctx) // safe to call when logged out
package auth
