// SPDX-License-Identifier: Apache-2.0

package models

// NotesResponse is the payload of the remote list endpoint.
type NotesResponse struct {
	Notes  []Note `json:"notes"`
	Length int    `json:"length"`
}

// PutNoteRequest is the payload of the remote put endpoint. Version carries
// the remote_version the client last observed; the server rejects the write
// with 409 when it no longer matches.
type PutNoteRequest struct {
	Note    Note  `json:"note"`
	Version int64 `json:"version"`
}

// ErrorResponse is the uniform error body returned by the remote server.
type ErrorResponse struct {
	Error string `json:"error"`
}
