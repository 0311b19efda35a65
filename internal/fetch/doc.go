// Package fetch issues HTTP GET requests against the register with politeness
// rate limiting and bounded retries.
//
// Errors are classified as transient (timeouts, 5xx responses) or permanent
// (4xx responses, DNS failures). Only transient errors are retried, with
// exponential backoff; the classification is also exposed to callers through
// the Error type so the pagination driver can report failures precisely.
package fetch
