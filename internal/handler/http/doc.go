// Package http implements the HTTP transport layer of the entry gate.
//
// It exposes route wiring, the gate request handlers, and middleware used
// by the REST API. Cross-cutting concerns such as session authentication,
// request tracing, access logging, and the per-address login abuse guard
// are handled in this package before requests are delegated to the
// service layer.
package http
