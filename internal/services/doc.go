// Package services contains the customer.io Track API client.
//
// The [Deleter] interface is the only capability the purge engine depends on,
// which keeps the engine testable against in-memory doubles. [CustomerIO] is
// the real implementation, bound to a site ID and API key via HTTP basic auth.
package services
