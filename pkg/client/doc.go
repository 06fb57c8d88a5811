// Package client wraps the dashboard HTTP endpoints that sit next to the form
// refill flow: message-task CRUD, job refresh, and article export. Each call
// maps one-to-one onto a request and returns the raw response; there is no
// retry, caching, or authentication handling.
package client
