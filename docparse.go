// Package docparse extracts the content tree of a documentation website.
// Given a start URL it classifies each page by its publishing platform,
// isolates the main article body and navigation structure while discarding
// chrome (headers, footers, sidebars, ad blocks), and hands the results to
// exporters that produce portable formats.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, http/).
package docparse
