// Package router is the dispatch engine: it maps an inbound HTTP request
// onto a registered repository and routes it to the matching CRUD, action,
// or search behavior.
//
// Routing is resolution-driven rather than pattern-driven. The request
// path is first tested against the API namespace (configured base path or
// any repository's custom prefix), then the URI key segment is resolved
// through the registry, and the remaining segments select the operation:
//
//	GET    {base}/search                     global search
//	GET    {base}/{key}                      list
//	POST   {base}/{key}                      store
//	GET    {base}/{key}/{id}                 show
//	PUT    {base}/{key}/{id}                 update (PATCH accepted)
//	DELETE {base}/{key}/{id}                 destroy
//	POST   {base}/{key}/actions/{name}       collection action
//	POST   {base}/{key}/{id}/actions/{name}  item action
//
// Responses use a JSON envelope: {"data": ...} on success and
// {"errors": [...]} on failure.
package router
