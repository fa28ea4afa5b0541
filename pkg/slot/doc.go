// Package slot holds the booking slot rules shared by the server and its
// clients: conflict evaluation over a booking snapshot, and the booking
// status lifecycle.
//
// All functions are pure. IsSlotAvailable evaluates whatever snapshot it is
// handed; when that snapshot comes from a client-side cache the result is
// advisory only, since another writer may have filled the slot after the
// snapshot was taken. The authoritative answer always comes from the store
// that performs the conflict check at write time, and callers must treat a
// rejected creation as the source of truth even when their local evaluator
// said the slot was free.
package slot
