/*
Package screen provides the byte-level transforms of the obfuscation pipeline:
XOR combination of equal-length sample buffers, cyclic per-byte bit rotation,
streaming variants of the XOR screen, and generation of distortion rasters.

None of this amounts to encryption: anyone holding the distortion raster can
undo every transform, and the rotation count is guessable by inspection. Treat
the package as a demonstration of lossless obfuscation, never as protection
for sensitive data.

Both transforms are exact involutions: combining twice with the same distortion
buffer, or rotating left by the same count used to rotate right, reproduces the
input bit-for-bit. The pipeline relies on this to recover the original raster.
*/
package screen
