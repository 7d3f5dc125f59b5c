// Package middleware decorates a ports.Scratchpad with storage-side behavior.
package middleware

import "github.com/aretw0/tper/pkg/ports"

// Middleware allows wrapping a Scratchpad to add behavior.
type Middleware func(ports.Scratchpad) ports.Scratchpad

// Chain applies mws to next so that the first middleware is the outermost.
func Chain(next ports.Scratchpad, mws ...Middleware) ports.Scratchpad {
	for i := len(mws) - 1; i >= 0; i-- {
		next = mws[i](next)
	}
	return next
}
