// Package report turns generated survey report markdown into terminal output.
//
// Reports come back from the API as markdown with Turkish headings and inline
// percentage figures such as "72%". Outline builds a table of contents from
// the level 1-3 headings, Percentages pulls out the figures, and RenderText
// prints a plain-text rendering with optional progress bars.
//
// Anchors follow the fragment ids the web front-end assigns to report
// headings, so an outline entry can be pasted after a report URL.
package report
