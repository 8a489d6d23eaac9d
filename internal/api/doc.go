// Package api handles incoming HTTP requests for the task resource: path and
// body parsing, request validation, and response formatting. Handlers call a
// store.TaskStore directly and wrap every result in the uniform
// {success, data|message} envelope from package shared.
package api
