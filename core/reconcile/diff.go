package reconcile

import (
	"strings"

	"change-detector/core/dataset"
	"change-detector/core/utils"
)

// keySeparator joins identity values; it cannot appear in road names read from CSV or SQL.
const keySeparator = "\x1f"

// Difference returns the records of b whose identity tuple is absent from a,
// and the records of a whose identity tuple is absent from b.
// Identity tuples are compared exactly, with set semantics; every row sharing an
// orphaned identity tuple is returned. A missing identity column is an error.
func Difference(a, b *dataset.Table, idColumns []string) (onlyInB, onlyInA *dataset.Table, err error) {
	keysA, err := identityKeys(a, idColumns)
	if err != nil {
		return nil, nil, err
	}
	keysB, err := identityKeys(b, idColumns)
	if err != nil {
		return nil, nil, err
	}

	setA := toSet(keysA)
	setB := toSet(keysB)

	onlyInB = b.Filter(func(row int) bool {
		_, found := setA[keysB[row]]
		return !found
	})
	onlyInA = a.Filter(func(row int) bool {
		_, found := setB[keysA[row]]
		return !found
	})

	return onlyInB, onlyInA, nil
}

// identityKeys projects every row onto its identity columns and encodes the tuple.
func identityKeys(t *dataset.Table, idColumns []string) ([]string, error) {
	idx, err := t.Indexes(idColumns)
	if err != nil {
		return nil, err
	}

	keys := make([]string, len(t.Rows))
	parts := make([]string, len(idx))
	for i, row := range t.Rows {
		for j, pos := range idx {
			parts[j] = utils.ToString(row[pos])
		}
		keys[i] = strings.Join(parts, keySeparator)
	}
	return keys, nil
}

func toSet(keys []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}
