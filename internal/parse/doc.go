// Package parse extracts register records from the ADGM public register's
// HTML.
//
// ParseListing handles one page of search results and produces one Record per
// listed entity, in document order. A listing row with a missing cell yields
// an empty field rather than a dropped record. A page whose listing container
// is absent entirely fails with ErrNoListing, which is distinct from a
// present-but-empty listing (zero results, a normal end-of-pagination
// signal).
//
// ParseDetail handles an entity's detail page: the regulated-activities
// accordion and the special-conditions table.
package parse
