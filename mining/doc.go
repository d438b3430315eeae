// Package mining provides the shared core for top-K closed high-utility itemset
// mining over uncertain transactional data.
//
// # Reading Guide
//
// Start with these files to understand the core:
//   - item.go / dataset.go: Item, Transaction and Dataset value types, ETWU tables
//   - itemset.go: Itemset, the unit every engine emits
//   - topk.go: TopK, the bounded buffer that keeps the K best closed itemsets
//   - miner.go: the Miner interface and Run, the uniform entry point
//
// # Architecture
//
// The mining package defines the data model, the Top-K/closed maintenance
// engine and the run harness; search engines live in sub-packages:
//   - mining/uptree/: U-TKU, prefix-tree growth with database verification
//   - mining/ulist/: U-TKO, vertical utility-list joins
//   - mining/efim/: U-EFIM, depth-first search over projected transaction arrays
//   - mining/trace/: decision trace of Top-K admissions
//   - mining/dataio/: dataset loader and result writers
//   - mining/bench/: benchmark driver with timeout and memory sentinels
//
// Engines register a factory with RegisterMiner from an init() in their own
// register.go, so callers select an engine by name through NewMiner.
//
// # Expected utility model
//
// For an itemset X and a transaction T that contains every item of X, the
// expected utility is (Σ utility(i)) × (Π probability(i)) over i in X, and the
// expected support is Π probability(i). Both are summed across transactions.
// Every comparison of utilities or supports goes through the epsilon helpers
// in epsilon.go.
package mining
