// Package d2interface gives typed access to data and functions inside the
// Diablo II host modules across several host builds.
//
// Each supported build is a Version: one Table per host module listing where
// every field lives, as an offset from the module's load base or an export
// ordinal. A Session detects the build, binds the loaded modules and
// resolves the tables into Accessors. Consumers only see the typed
// accessors, never raw addresses.
//
// Reading, writing or calling through an accessor crosses into memory and
// code owned by the host. Those operations go through the Memory and Caller
// interfaces; hostmod provides the in-process implementations.
package d2interface
