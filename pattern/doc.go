// Package pattern holds packed-bit input stimuli plus an optional
// reference-output vector, consumed by package simulator. Storage is
// *bitset.BitSet per PrimaryInput/PrimaryOutput index: the pattern module
// needs word-and-bit addressed random access for ReadStimuli's byte-to-bit
// unpacking and for counter-example fusion, unlike package simulator's hot
// inner loop which works directly on raw []uint64 words.
package pattern
