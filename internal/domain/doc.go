// Package domain contains the task entity and the errors shared by the request
// path, independent of HTTP and of any specific database driver.
package domain
