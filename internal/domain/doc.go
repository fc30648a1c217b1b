// Package domain contains the core request and result types of the article
// generation pipeline together with the error kinds every layer agrees on.
// It is independent of any transport, provider, or configuration mechanism.
package domain
