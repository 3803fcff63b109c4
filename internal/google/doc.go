// Package google provides shared Google OAuth2 authentication for the
// Calendar, Drive and Gmail clients.
//
// Tokens are stored per account under the user cache directory, which
// supports the STDIO transport where no browser-based callback is
// available: the user authorizes once out-of-band and the resulting code
// is saved through the google_save_auth_code tool.
package google
