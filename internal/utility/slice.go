package utility

// Contains kiểm tra slice có chứa phần tử hay không.
func Contains[T comparable](items []T, target T) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
