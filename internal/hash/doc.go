// Package hash provides the CRC32-Castagnoli checksum that guards stored
// surfaces, both inside surface files and on upload to object stores.
//
//	h.Checksum = hash.CRC32C(payload)
//	...
//	if err := hash.Verify(payload, h.Checksum); err != nil {
//		// payload was damaged at rest or in transit
//	}
package hash
