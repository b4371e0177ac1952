// Package kdc implements the Key Distribution Center.
//
// The KDC shares a long-term key with every registered participant. A
// participant asks for a session with a peer by sending a KeyRequest sealed
// under its own long-term key, together with the identity it claims. The
// KDC looks up that identity's key and tries to open the request: success is
// the authentication, since only the key holder could have produced a
// ciphertext that opens. It then mints a fresh session key and returns two
// grants, one sealed for each side.
//
// # Statelessness
//
// Nothing about a transaction outlives HandleRequest. The session key is
// wiped from the KDC's memory once both grants are sealed, and either both
// grants are returned or neither is.
package kdc
