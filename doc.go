// Package mx is the bytecode execution engine of the mx scripting runtime. It
// runs finished instruction sequences produced by a compiler, by the bytecode
// Builder or read from assembly listings and binary images.
//
// The engine lives under src/:
//
//	src/types     values: numbers, primitives, tables, function values
//	src/bytecode  instruction set, programs, builder and binary images
//	src/asm       textual instruction listings
//	src/runtime   the VM, native functions and the standard globals
//	src/conf      constants, the mx.toml configuration and logging
//	src/format    printf style templates for the format global
//	src/lerrors   runtime errors
//
// This package only wires those together for the common cases of running a
// listing or an image file with the standard globals.
package mx
