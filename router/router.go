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

// Package router collects gin route registrations before an engine exists,
// so components (admin API, future listeners) can register handlers during
// construction and have them wired onto the engine once, at startup.
package router

import (
	ginsdk "github.com/gin-gonic/gin"
)

type route struct {
	group    string
	method   string
	path     string
	handlers []ginsdk.HandlerFunc
}

// RouterList accumulates route registrations and applies them to a gin
// engine on demand.
type RouterList interface {
	// Engine returns an engine built from the init func given to NewRouterList.
	Engine() *ginsdk.Engine

	// Register adds a route with no group prefix.
	Register(method, path string, handlers ...ginsdk.HandlerFunc)

	// RegisterInGroup adds a route under the given group prefix. An empty
	// group is equivalent to Register.
	RegisterInGroup(group, method, path string, handlers ...ginsdk.HandlerFunc)

	// RegisterMergeInGroup behaves like RegisterInGroup, except that a
	// second registration for the same group/method/path replaces the
	// handlers of the first instead of adding a duplicate route.
	RegisterMergeInGroup(group, method, path string, handlers ...ginsdk.HandlerFunc)

	// Handler applies every registered route to e.
	Handler(e *ginsdk.Engine)
}

type routerList struct {
	init   func() *ginsdk.Engine
	routes []route
}

// NewRouterList creates a RouterList. init builds the engine returned by
// Engine(); if nil, DefaultGinInit is used.
func NewRouterList(init func() *ginsdk.Engine) RouterList {
	if init == nil {
		init = DefaultGinInit
	}

	return &routerList{init: init}
}

func (r *routerList) Engine() *ginsdk.Engine {
	return r.init()
}

func (r *routerList) Register(method, path string, handlers ...ginsdk.HandlerFunc) {
	r.RegisterInGroup("", method, path, handlers...)
}

func (r *routerList) RegisterInGroup(group, method, path string, handlers ...ginsdk.HandlerFunc) {
	if group == "" {
		group = EmptyHandlerGroup
	}

	r.routes = append(r.routes, route{group: group, method: method, path: path, handlers: handlers})
}

func (r *routerList) RegisterMergeInGroup(group, method, path string, handlers ...ginsdk.HandlerFunc) {
	if group == "" {
		group = EmptyHandlerGroup
	}

	for i := range r.routes {
		if r.routes[i].group == group && r.routes[i].method == method && r.routes[i].path == path {
			r.routes[i].handlers = handlers
			return
		}
	}

	r.routes = append(r.routes, route{group: group, method: method, path: path, handlers: handlers})
}

func (r *routerList) Handler(e *ginsdk.Engine) {
	groups := make(map[string]ginsdk.IRoutes)

	for _, rt := range r.routes {
		var target ginsdk.IRoutes

		if rt.group == EmptyHandlerGroup {
			target = e
		} else {
			g, ok := groups[rt.group]
			if !ok {
				g = e.Group(rt.group)
				groups[rt.group] = g
			}
			target = g
		}

		target.Handle(rt.method, rt.path, rt.handlers...)
	}
}
