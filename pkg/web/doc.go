// Package web provides infrastructure for serving views with Go templates.
//
// A RouteTable maps URL paths to declared views under a history mode. A
// TemplateSet pre-parses layouts and views at startup so handlers render
// without per-request parsing, and a Router dispatches requests to view
// handlers with a fallback for unmatched paths.
package web
