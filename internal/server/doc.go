// Package server provides the HTTP media server that makes uploaded videos playable by URL.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
// [Logging] records one line per request and [Recover] turns handler panics into 500 responses.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Media Handler
//
// [MediaHandler] serves files from the storage directory under "/media/". Keys map directly onto
// paths below the storage root ("/media/<uploader>/<video>.mp4"); range requests are supported so
// players can seek. Directory listings are never served.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
