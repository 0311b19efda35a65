// Package normalize corrects inconsistent company-name text scraped from the
// FSRA public register.
//
// The register renders a handful of names with stale branding, stray status
// suffixes, or odd casing. A read-only special-case table maps those known
// strings to their canonical display form; everything else gets a generic
// cleanup (whitespace collapse plus first-letter capitalization). The same
// package also produces the URL slugs used to reach an entity's detail page,
// since the register's slugs follow their own formatting rules with their own
// exceptions.
package normalize
