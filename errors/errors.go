/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package errors classifies the handful of error conditions the proxy can
// raise into a small set of CodeError values, each carrying the error that
// caused it.
package errors

import "fmt"

// CodeError identifies the kind of failure a CodeError carries. Values are
// grouped by component, loosely mirroring HTTP status ranges so the admin
// API can reuse them directly.
type CodeError uint16

const (
	// CodeConfig marks a configuration load/validation failure. Fatal at
	// startup.
	CodeConfig CodeError = 500 + iota
	// CodeAdmissionRejected marks a connection refused by the admission
	// check because the tunnel table is at capacity.
	CodeAdmissionRejected
	// CodeDial marks a failure to connect to a selected target.
	CodeDial
	// CodeRelayIO marks an I/O failure (other than timeout or peer close)
	// while relaying bytes on an open tunnel.
	CodeRelayIO
	// CodeRelayTimeout marks a read/write deadline expiring on an open
	// tunnel.
	CodeRelayTimeout
	// CodePeerClosed marks an orderly peer shutdown (EOF). Not itself an
	// error condition, but classified for uniform logging.
	CodePeerClosed
	// CodeAdminRequest marks a malformed or invalid admin API request.
	CodeAdminRequest CodeError = 422
)

// String names the CodeError for logging.
func (c CodeError) String() string {
	switch c {
	case CodeConfig:
		return "configuration error"
	case CodeAdmissionRejected:
		return "admission rejected"
	case CodeDial:
		return "dial error"
	case CodeRelayIO:
		return "relay io error"
	case CodeRelayTimeout:
		return "relay timeout"
	case CodePeerClosed:
		return "peer closed"
	case CodeAdminRequest:
		return "admin request error"
	default:
		return "unknown error"
	}
}

// Error is a CodeError wrapping the underlying cause, if any.
type Error struct {
	code   CodeError
	parent error
}

// New builds an Error of the given kind wrapping parent. parent may be nil.
func New(code CodeError, parent error) *Error {
	return &Error{code: code, parent: parent}
}

func (e *Error) Error() string {
	if e.parent == nil {
		return e.code.String()
	}
	return fmt.Sprintf("%s: %v", e.code.String(), e.parent)
}

// Unwrap exposes the wrapped cause to errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.parent
}

// Code returns the CodeError this Error was built with.
func (e *Error) Code() CodeError {
	return e.code
}

// Is reports whether target is an *Error with the same code, so
// errors.Is(err, errors.New(errors.CodeDial, nil)) works as expected.
func (e *Error) Is(target error) bool {
	o, ok := target.(*Error)
	if !ok {
		return false
	}
	return o.code == e.code
}
