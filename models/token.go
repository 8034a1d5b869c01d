// SPDX-License-Identifier: Apache-2.0

package models

import "github.com/golang-jwt/jwt/v5"

// Token wraps a signed JWT issued by the remote notes server together with
// the parsed token object and the user it was issued for.
type Token struct {
	Token        *jwt.Token `json:"-"`
	SignedString string     `json:"token"`
	UserID       int64      `json:"user_id"`
}

// User identifies a device owner on the remote notes server.
type User struct {
	UserID   int64  `json:"user_id,omitempty"`
	Login    string `json:"login"`
	Password string `json:"password,omitempty"`
}
