package budget

import "finanzas/internal/models"

// ReferencedKeys returns every amount key reachable from the current buckets.
func ReferencedKeys(buckets []models.Bucket) map[string]struct{} {
	keys := make(map[string]struct{})
	for _, b := range buckets {
		for _, c := range b.Categories {
			for _, sub := range c.Subcategories {
				keys[models.AmountKey(c.ID, sub)] = struct{}{}
			}
		}
	}
	return keys
}

// PruneOrphans deletes recorded amounts no current bucket references and
// returns how many keys were removed across all partitions. Deleting a
// bucket does not call this; orphans stay until pruned explicitly.
func PruneOrphans(s *models.BudgetState) int {
	live := ReferencedKeys(s.Buckets)
	removed := 0
	for _, p := range []models.AmountPartition{
		models.PartitionExpense,
		models.PartitionInvestmentPesos,
		models.PartitionInvestmentUSD,
	} {
		m := s.Amounts(p)
		for key := range m {
			if _, ok := live[key]; !ok {
				delete(m, key)
				removed++
			}
		}
	}
	return removed
}
