package sliceutils

func Cut[T any](slice []T, start, end int) []T {
	if len(slice) == 0 {
		return slice
	}

	if start < 0 {
		start = len(slice) + start
	}
	if end < 0 {
		end = len(slice) + end
	}

	return slice[max(start, 0):min(end, len(slice))]
}

// Last returns the up-to-n trailing elements of slice.
func Last[T any](slice []T, n int) []T {
	if n <= 0 || len(slice) == 0 {
		return nil
	}
	if len(slice) <= n {
		return slice
	}
	return slice[len(slice)-n:]
}
