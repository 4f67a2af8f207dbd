// Package api is the rigbudget wire contract: message types, procedure
// names and typed Connect clients and handlers for the auth and checklist
// services.
//
// Messages are plain Go structs carried by a JSON codec, so the package has
// no generated code. Handlers and clients built here install that codec
// themselves; callers only add interceptors.
package api
