// Package server provides HTTP routing, middleware, sessions, and handlers for
// the Friendify web application.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method-qualified patterns.
//
// # Sessions
//
// [SessionManager] wraps a gorilla/sessions cookie store. It carries the user's
// OAuth token (as JSON), their id and display name, the OAuth state nonce during
// login, and the current solo-mode question.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
//
// The application's handler groups ([AuthHandler], [TrackHandler], [SoloHandler],
// [LobbyHandler]) each own a subtree of the route table. Everything except /login
// and /callback sits behind the session-auth guard, which redirects anonymous
// requests to /login.
package server
