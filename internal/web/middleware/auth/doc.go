// Package auth provides the authentication middleware of the web application.
//
// LoadUser runs before every request and resolves the user id stored in the
// session cookie to a user record, which handlers and templates read through
// handler.CurrentUser. LoginRequired guards views that need a logged in user
// and redirects anonymous requests to the login page.
package auth
