// Package publish forwards finished articles to a downstream content
// management endpoint. The downstream response is passed back to the caller
// unchanged; only failures to reach the endpoint are reported as errors.
package publish
