// Package homgroups finds homogeneous groups of items from pairwise
// "significantly different" verdicts and labels them for compact letter
// displays.
//
// A homogeneous group is a set of items among which no two are flagged as
// different. FindHomogeneousGroups returns the irredundant cover built from
// the maximal cliques of the compatibility graph (an edge for every pair not
// flagged as different). LabelHomogeneousGroups numbers the groups of that
// cover 1..k and reports, per item, the labels of the groups it belongs to.
//
// Both entry points are pure: every call builds its own graph and nothing is
// shared between calls, so they are safe for concurrent use.
package homgroups
