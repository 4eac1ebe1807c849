package helpers

func IsBetween(val rune, first, last rune) bool {
	if val > last {
		return false
	}
	if val >= first {
		return true
	}
	return false
}
