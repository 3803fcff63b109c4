// Package drive provides a client for the Google Drive API scoped to
// publishing generated collateral as hosted Google Docs.
//
// Upload converts plain text or markdown into a native Google Doc so the
// returned web view link opens in the Docs editor. This is the primary
// delivery channel; failures here (quota, permission) are expected and
// handled by the delivery fallback chain, not by this package.
package drive
