// Package drive holds the capnp message types exchanged between the
// waypoint updater, the dbw dispatcher and the rest of the vehicle stack.
// The bindings follow the capnpc-go layout for drive.capnp, except that
// union getters return an error instead of panicking on a mismatched
// Which().
package drive
