// Package main hosts the quorum CLI entrypoint and command graph.
//
// Every analysis command loads the configuration once, runs the pipeline over
// the session document directory, and renders one view of the result:
// presence recap, conflictual deliberations, member registry, or the full
// artifact set written to the output directory.
package main
