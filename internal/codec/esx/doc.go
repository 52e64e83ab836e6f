// Package esx converts between the relational project model and ESX
// documents, the hierarchical XML interchange format read by third-party
// estimating tools.
//
// The Encoder writes a ProjectGraph as a single document. Rooms and line
// items without an owner are grouped under a synthetic "Unassigned" level
// so nothing is lost; its "General" room for room-less items carries
// synthetic="true" so a user room of the same name stays distinct. Text
// that XML cannot carry is replaced with U+FFFD, so every encoded document
// decodes. The Decoder rebuilds the graph purely from element
// nesting: levels contain rooms, rooms contain line items. Photos name
// their room as free text and are matched to decoded rooms by name in a
// second pass.
//
// Both directions are pure functions of their input and safe for
// concurrent use. Callers bound untrusted input size before decoding.
package esx
