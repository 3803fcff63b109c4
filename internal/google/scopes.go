package google

// DefaultOAuthScopes are the Google OAuth scopes the server needs.
//
// The scopes provide access to:
//   - Google Calendar: availability queries and event creation
//   - Google Drive: creating hosted collateral documents
//   - Gmail: sending delivery-fallback emails
var DefaultOAuthScopes = []string{
	// OpenID Connect scopes (required for user info)
	"openid",
	"https://www.googleapis.com/auth/userinfo.email",

	// Google Calendar scope
	"https://www.googleapis.com/auth/calendar",

	// Google Drive scope (limited to files this app creates)
	"https://www.googleapis.com/auth/drive.file",

	// Gmail send scope
	"https://www.googleapis.com/auth/gmail.send",
}
