// Package github fetches pack documents from GitHub repositories.
//
// References have the form "owner/repo[/path][@ref]". A path naming a
// directory resolves to the first schema file found in it, in the same order
// local pack directories use. Requests are throttled proactively and follow
// the X-RateLimit headers GitHub returns.
package github
