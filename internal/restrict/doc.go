// Package restrict evaluates Fedora 3 XACML policy documents and stamps
// migration sheets with a visibility column.
//
// Only the two restriction idioms the legacy repository emits are
// interpreted: a deny-dsid-mime rule listing denied datastream IDs and a
// deny-access-functions rule gating the whole object to named users. Every
// other rule is ignored; this is a closed convention, not general XACML
// evaluation.
package restrict
