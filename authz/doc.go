// Package authz decides whether a protected view may render for the current
// session.
//
// [Decide] is a pure, total function over (loading flag, session, required
// role set): identical inputs always produce the identical [Verdict], no I/O,
// no state between calls. [RouteTable] carries the role sets that protected
// views declare at registration time.
package authz
