//Utility functions

package execute

// Keys returns the keys of the map m. The keys will be in an indeterminate order.
func getMapKeys[M ~map[K]V, K comparable, V any](m M) []K {
	ret := make([]K, len(m))
	index := 0
	for k := range m {
		ret[index] = k
		index++
	}

	return ret
}

// Conditional
func cond[T any](isTrue bool, ifTrue, ifFalse T) T {
	if isTrue {
		return ifTrue
	}
	return ifFalse
}
