// Package block assembles single-block key-data records.
//
// A record is laid out as:
//
//	envelope        01 FF <data size:2>
//	key data header 01 04 <key id:4>
//	expiry rule     10 <timestamp:4>                (optional)
//	room list       { 02 <access point:3> <target:2> }* FF AA
//	code segment    routines, one per access group
//	integrity       <2 bytes>                       (zero by default)
//
// Room-list targets point into the code segment, which is written after
// the room list. SingleBlock resolves this by sizing every section that
// precedes the code segment first; that sum is the base offset added to
// each routine's segment-relative offset. Targets are payload positions,
// counted from the first byte after the envelope.
//
// Basic usage:
//
//	data, err := block.New(0xAABBCCDD).
//		WithValidUntil(0x09080706).
//		WithOverridingAccess([]uint32{101}, 1).
//		WithNonOverridingAccess([]uint32{1000000, 1000001}).
//		Bytes()
package block
