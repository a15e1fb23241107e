// Package attendance builds the member × session presence matrix and the
// per-member attendance summary.
//
// Every registered member gets one row and every session one column; a cell
// is true when the member is listed as present (or carries a proxy, and
// optionally when they gave one). Rows come back ranked by attendance rate.
// Totals always count every session in the period, so members elected part
// way through show a lower rate.
package attendance
