/*
 * MIT License
 *
 * Copyright (c) 2019 Nicolas JUHEL
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

package router

import (
	"net/http"

	ginsdk "github.com/gin-gonic/gin"
)

// EmptyHandlerGroup is the group path used internally to mark ungrouped routes.
const EmptyHandlerGroup = "<nil>"

const (
	GinContextStartUnixNanoTime = "gin-ctx-start-unix-nano-time"
	GinContextRequestPath       = "gin-ctx-request-path"
	GinContextRequestUser       = "gin-ctx-request-user"
)

// DefaultGinInit builds a gin.Engine with the two middlewares every admin
// listener in this module needs: request logging and panic recovery. The
// admin surface is read-only and unauthenticated, so nothing more is added.
func DefaultGinInit() *ginsdk.Engine {
	e := ginsdk.New()
	e.Use(ginsdk.Logger(), ginsdk.Recovery())
	return e
}

// DefaultGinWithTrustyProxy is DefaultGinInit with an explicit trusted-proxy
// list, for deployments sitting behind a known set of reverse proxies.
func DefaultGinWithTrustyProxy(proxies []string) *ginsdk.Engine {
	e := DefaultGinInit()
	_ = e.SetTrustedProxies(proxies)
	return e
}

// DefaultGinWithTrustedPlatform is DefaultGinInit with a trusted-platform
// header name set (e.g. "X-CDN-IP"), used to trust the client IP a CDN or
// PaaS platform injects rather than re-deriving it from the socket peer.
func DefaultGinWithTrustedPlatform(platform string) *ginsdk.Engine {
	e := DefaultGinInit()
	if platform != "" {
		e.TrustedPlatform = platform
	}
	return e
}

// GinEngine builds an engine with an optional trusted platform header and
// an optional set of trusted proxy CIDRs/IPs.
func GinEngine(trustedPlatform string, trustedProxies ...string) (*ginsdk.Engine, error) {
	e := DefaultGinInit()

	if trustedPlatform != "" {
		e.TrustedPlatform = trustedPlatform
	}

	if len(trustedProxies) > 0 {
		if err := e.SetTrustedProxies(trustedProxies); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// GinAddGlobalMiddleware appends middleware to an existing engine and
// returns it, to allow call-site chaining.
func GinAddGlobalMiddleware(e *ginsdk.Engine, m ...ginsdk.HandlerFunc) *ginsdk.Engine {
	e.Use(m...)
	return e
}

// SetGinHandler adapts a plain gin handler func to gin.HandlerFunc. Gin
// handlers already satisfy the type; this exists so callers building
// handler slices from a generic func value don't need to spell the type.
func SetGinHandler(h func(c *ginsdk.Context)) ginsdk.HandlerFunc {
	return h
}

// Handler builds a net/http Handler out of a RouterList by applying its
// registrations to a fresh engine and returning that engine.
func Handler(rl RouterList) http.Handler {
	e := rl.Engine()
	rl.Handler(e)
	return e
}

var globalRouters = NewRouterList(DefaultGinInit)

// RoutersRegister registers a route on the process-wide default RouterList.
func RoutersRegister(method, path string, handlers ...ginsdk.HandlerFunc) {
	globalRouters.Register(method, path, handlers...)
}

// RoutersRegisterInGroup registers a route under a path group on the
// process-wide default RouterList.
func RoutersRegisterInGroup(group, method, path string, handlers ...ginsdk.HandlerFunc) {
	globalRouters.RegisterInGroup(group, method, path, handlers...)
}

// RoutersHandler applies every route registered on the process-wide default
// RouterList to the given engine.
func RoutersHandler(e *ginsdk.Engine) {
	globalRouters.Handler(e)
}
