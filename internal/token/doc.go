// Package token encodes and decodes the compact signed bearer tokens handed
// out to principals.
//
// A token is an HS256 JWT whose payload carries the subject (username), a
// unique id, and the issue and expiry instants as Unix milliseconds. Decode
// classifies every failure as exactly one of [ErrMalformed],
// [ErrInvalidSignature] or [ErrExpired]; the signature is always verified
// before expiry is considered.
package token
