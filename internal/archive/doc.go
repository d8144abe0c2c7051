// Package archive partitions flat, chronologically descending entry
// listings into the nested year -> month -> entry structure the renderer
// consumes.
//
// The grouper is a single forward pass and never sorts: its input contract
// is that every item is published and the sequence is ordered by descending
// posting time. Contract violations fail fast with a ContractError rather
// than silently producing wrong buckets.
package archive
