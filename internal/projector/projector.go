package projector

import (
	"sort"

	"github.com/tirasundara/transaction-etl/internal/domain"
)

// Projector decomposes an enriched batch into the normalized entity sets of
// the target schema.
type Projector struct{}

// New creates a Projector
func New() *Projector {
	return &Projector{}
}

// Project derives the entity sets for one batch. Dimension sets are
// deduplicated by natural key and sorted, so the writer sees a deterministic
// order; fact rows keep the batch order. The amount-band set is constant and
// independent of the batch.
//
// A product id appearing with more than one category keeps its first
// category; each extra category is counted as a conflict for the run report.
// Conflicts are a data-quality warning, not a batch rejection.
func (p *Projector) Project(records []domain.EnrichedRecord) (domain.EntitySets, int) {
	if len(records) == 0 {
		return domain.EntitySets{}, 0
	}

	customerSet := make(map[string]bool)
	productCategories := make(map[string]string)
	typeSet := make(map[string]bool)
	spendSet := make(map[string]bool)
	conflicts := 0

	sets := domain.EntitySets{
		AmountBands: domain.DefaultAmountBands(),
		Facts:       make([]domain.TransactionFact, 0, len(records)),
	}

	for _, record := range records {
		customerSet[record.CustomerID] = true
		typeSet[record.TransactionType] = true
		spendSet[record.SpendCategory] = true

		if category, ok := productCategories[record.ProductID]; ok {
			if category != record.ProductCategory {
				conflicts++
			}
		} else {
			productCategories[record.ProductID] = record.ProductCategory
		}

		sets.Facts = append(sets.Facts, domain.TransactionFact{
			CustomerID:      record.CustomerID,
			ProductID:       record.ProductID,
			TransactionDate: record.TransactionDate,
			Amount:          record.Amount,
			TransactionType: record.TransactionType,
			SpendCategory:   record.SpendCategory,
			AmountCategory:  record.AmountCategory,
		})
	}

	for _, id := range sortedKeys(customerSet) {
		sets.Customers = append(sets.Customers, domain.Customer{CustomerID: id})
	}

	productIDs := make([]string, 0, len(productCategories))
	for id := range productCategories {
		productIDs = append(productIDs, id)
	}
	sort.Strings(productIDs)
	for _, id := range productIDs {
		sets.Products = append(sets.Products, domain.Product{ProductID: id, ProductCategory: productCategories[id]})
	}

	for _, name := range sortedKeys(typeSet) {
		sets.TransactionTypes = append(sets.TransactionTypes, domain.TransactionType{Name: name})
	}
	for _, name := range sortedKeys(spendSet) {
		sets.SpendCategories = append(sets.SpendCategories, domain.SpendCategory{Name: name})
	}

	return sets, conflicts
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
