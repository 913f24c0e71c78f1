// Package domain contains the core data model for mathfish: curriculum standard
// records, taxonomy levels, relation kinds, domain groups, label pairs and the
// id derivation rules shared by every other package.
//
// The domain is persistence-agnostic: it does not read files or parse JSON.
// Infra loaders map into these types; taxonomy, sampler, retriever and relgraph
// build their indexes from them.
package domain
