// Package kernel implements the neighborhood signature mixer and the row kernels
// that apply it across a grid.
//
// # Mixer
//
// Mix folds nine uint32 samples and a 64-bit seed into one uint64 with repeated
// xor-then-multiply steps. The eleven multipliers are fixed; changing any of them
// breaks signature compatibility with every existing surface.
//
// # Row kernels
//
// Row computes the interior signatures of a single grid row. Two implementations
// exist and produce bit-identical output:
//
//   - generic: one cell at a time
//   - unrolled: four independent accumulators per step, which hides the
//     multiply latency on 64-bit cores
//
// The active implementation is selected once at init. Set GRIDSIG_KERNEL to
// "generic" or "unrolled" to override the selection.
package kernel
