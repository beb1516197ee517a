// Command libgridsig builds gridsig as a C shared library:
//
//	go build -buildmode=c-shared -o libgridsig.so ./cmd/libgridsig
//
// It exports
//
//	uint64_t compute_signature_3x3(const uint32_t *source, uint64_t seed);
//	void compute_signatures(const uint32_t *source, uint64_t *destination,
//	                        int32_t width, int32_t height, uint64_t seed);
//
// Both functions ignore NULL pointers and undersized grids. Neither retains
// the caller's buffers after returning.
package main

/*
#include <stdint.h>
*/
import "C"

import "unsafe"

//export compute_signature_3x3
func compute_signature_3x3(source *C.uint32_t, seed C.uint64_t) C.uint64_t {
	return C.uint64_t(signature3x3(unsafe.Pointer(source), uint64(seed)))
}

//export compute_signatures
func compute_signatures(source *C.uint32_t, destination *C.uint64_t, width, height C.int32_t, seed C.uint64_t) {
	computeSignatures(unsafe.Pointer(source), unsafe.Pointer(destination), int32(width), int32(height), uint64(seed))
}

func main() {}
