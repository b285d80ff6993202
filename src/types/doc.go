// Package types contains the value model every instruction operates on. A Value
// is one of a Primitive, a Table, a function pointer into the instruction
// sequence or a host native function. Primitives are nil, booleans, numbers and
// strings and are the only values that can be used as table keys. To make that
// possible Number has a total order where NaN equals itself and sorts before
// everything else.
//
// Tables are both dictionaries and lists. A binding to nil is the same as no
// binding at all for iteration, equality and length, which is how deletion is
// expressed. Lists are the bindings at 0, 1, 2... up to the first gap.
//
// Values are passed by clone. Operations that hand a table to someone else copy
// it with Clone so that no two owners can observe each other's mutations.
package types //nolint:revive
