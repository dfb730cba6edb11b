// Package httpapi serves the compose engine as a JSON API over gin.
//
// Routes live under /v1. Errors are returned as ErrorResponse bodies with a
// status derived from the domain error kind. Request metrics are exported on
// /metrics together with the promptsmith_compositions_total counter.
package httpapi
